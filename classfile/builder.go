package classfile

import (
	"bytes"
	"encoding/binary"
)

// Builder assembles a minimal, structurally valid class file: constant pool,
// access flags, super class, interfaces, fields and methods. Methods carry no
// Code attribute, which is all the type model reads.
type Builder struct {
	access     AccessFlags
	name       string
	super      string
	interfaces []string
	fields     []builderMember
	methods    []builderMember

	pool    [][]byte
	utf8s   map[string]uint16
	classes map[string]uint16
}

type builderMember struct {
	access     AccessFlags
	name, desc string
}

// NewBuilder starts a public class. super may be "" for java/lang/Object
// itself. Names may be dotted or internal.
func NewBuilder(name, super string) *Builder {
	return &Builder{
		access: AccPublic | AccSuper,
		name:   SourceToInternalName(name),
		super:  SourceToInternalName(super),
	}
}

func (b *Builder) Access(flags AccessFlags) *Builder {
	b.access = flags
	return b
}

func (b *Builder) Interface(name string) *Builder {
	b.interfaces = append(b.interfaces, SourceToInternalName(name))
	return b
}

func (b *Builder) Field(access AccessFlags, name, desc string) *Builder {
	b.fields = append(b.fields, builderMember{access, name, desc})
	return b
}

func (b *Builder) Method(access AccessFlags, name, desc string) *Builder {
	b.methods = append(b.methods, builderMember{access, name, desc})
	return b
}

// PublicMethod adds a public instance method.
func (b *Builder) PublicMethod(name, desc string) *Builder {
	return b.Method(AccPublic, name, desc)
}

// AbstractMethod adds a public abstract method.
func (b *Builder) AbstractMethod(name, desc string) *Builder {
	return b.Method(AccPublic|AccAbstract, name, desc)
}

func (b *Builder) Name() string {
	return b.name
}

func (b *Builder) Bytes() []byte {
	b.pool = nil
	b.utf8s = make(map[string]uint16)
	b.classes = make(map[string]uint16)

	var body bytes.Buffer
	u2 := func(v uint16) { _ = binary.Write(&body, binary.BigEndian, v) }

	u2(uint16(b.access))
	u2(b.classRef(b.name))
	if b.super == "" {
		u2(0)
	} else {
		u2(b.classRef(b.super))
	}
	u2(uint16(len(b.interfaces)))
	for _, iface := range b.interfaces {
		u2(b.classRef(iface))
	}
	for _, members := range [][]builderMember{b.fields, b.methods} {
		u2(uint16(len(members)))
		for _, m := range members {
			u2(uint16(m.access))
			u2(b.utf8Ref(m.name))
			u2(b.utf8Ref(m.desc))
			u2(0)
		}
	}
	u2(0)

	var out bytes.Buffer
	_ = binary.Write(&out, binary.BigEndian, uint32(Magic))
	_ = binary.Write(&out, binary.BigEndian, uint16(0))
	_ = binary.Write(&out, binary.BigEndian, uint16(52))
	_ = binary.Write(&out, binary.BigEndian, uint16(len(b.pool)+1))
	for _, entry := range b.pool {
		out.Write(entry)
	}
	out.Write(body.Bytes())
	return out.Bytes()
}

func (b *Builder) utf8Ref(s string) uint16 {
	if idx, ok := b.utf8s[s]; ok {
		return idx
	}
	entry := []byte{byte(ConstantUtf8), 0, 0}
	binary.BigEndian.PutUint16(entry[1:], uint16(len(s)))
	entry = append(entry, s...)
	b.pool = append(b.pool, entry)
	idx := uint16(len(b.pool))
	b.utf8s[s] = idx
	return idx
}

func (b *Builder) classRef(name string) uint16 {
	if idx, ok := b.classes[name]; ok {
		return idx
	}
	nameIdx := b.utf8Ref(name)
	entry := []byte{byte(ConstantClass), 0, 0}
	binary.BigEndian.PutUint16(entry[1:], nameIdx)
	b.pool = append(b.pool, entry)
	idx := uint16(len(b.pool))
	b.classes[name] = idx
	return idx
}
