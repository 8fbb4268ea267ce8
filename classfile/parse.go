package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf16"
)

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}

func ParseBytes(data []byte) (*ClassFile, error) {
	return Parse(bytes.NewReader(data))
}

func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}

	cp, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}
	cf.ConstantPool = cp

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	cf.SuperClass = r.readU2()

	interfacesCount := r.readU2()
	cf.Interfaces = make([]uint16, interfacesCount)
	for i := range cf.Interfaces {
		cf.Interfaces[i] = r.readU2()
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", r.err)
	}

	fieldsCount := r.readU2()
	cf.Fields = make([]FieldInfo, fieldsCount)
	for i := range cf.Fields {
		cf.Fields[i] = FieldInfo{
			AccessFlags:     AccessFlags(r.readU2()),
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
			Attributes:      readAttributes(r),
		}
		if r.err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, r.err)
		}
	}

	methodsCount := r.readU2()
	cf.Methods = make([]MethodInfo, methodsCount)
	for i := range cf.Methods {
		cf.Methods[i] = MethodInfo{
			AccessFlags:     AccessFlags(r.readU2()),
			NameIndex:       r.readU2(),
			DescriptorIndex: r.readU2(),
			Attributes:      readAttributes(r),
		}
		if r.err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, r.err)
		}
	}

	cf.Attributes = readAttributes(r)
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class attributes: %w", r.err)
	}

	return cf, nil
}

func readConstantPool(r *reader) (ConstantPool, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read constant pool count: %w", r.err)
	}
	if count == 0 {
		return nil, fmt.Errorf("invalid constant pool count 0")
	}

	cp := make(ConstantPool, count-1)
	for i := uint16(1); i < count; i++ {
		tag := ConstantTag(r.readU1())
		switch tag {
		case ConstantUtf8:
			length := r.readU2()
			cp[i-1] = &ConstantUtf8Info{Value: decodeModifiedUtf8(r.readBytes(int(length)))}
		case ConstantClass:
			cp[i-1] = &ConstantClassInfo{NameIndex: r.readU2()}
		default:
			size, ok := tag.payloadSize()
			if !ok {
				if r.err != nil {
					break
				}
				return nil, fmt.Errorf("failed to read constant pool entry %d: unknown tag %d", i, tag)
			}
			cp[i-1] = &ConstantRawInfo{Kind: tag, Payload: r.readBytes(size)}
			if tag.wide() {
				i++
			}
		}
		if r.err != nil {
			return nil, fmt.Errorf("failed to read constant pool entry %d: %w", i, r.err)
		}
	}
	return cp, nil
}

func readAttributes(r *reader) []AttributeInfo {
	count := r.readU2()
	if r.err != nil {
		return nil
	}
	attrs := make([]AttributeInfo, count)
	for i := range attrs {
		attrs[i].NameIndex = r.readU2()
		length := r.readU4()
		attrs[i].Info = r.readBytes(int(length))
	}
	return attrs
}

// decodeModifiedUtf8 decodes the JVM's modified UTF-8: NUL is encoded in two
// bytes and supplementary characters as surrogate pairs of three bytes each.
func decodeModifiedUtf8(b []byte) string {
	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c&0x80 == 0:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0 && i+1 < len(b):
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0 && i+2 < len(b):
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			units = append(units, uint16(c))
			i++
		}
	}
	return string(utf16.Decode(units))
}
