package classfile

import (
	"fmt"
	"strings"
)

// SplitMethodDescriptor splits a method descriptor such as
// "(ILjava/lang/String;[J)V" into its parameter descriptors
// ["I", "Ljava/lang/String;", "[J"] and its return descriptor "V".
func SplitMethodDescriptor(desc string) (params []string, ret string, err error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, "", fmt.Errorf("invalid method descriptor %q", desc)
	}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		n := fieldTypeLength(desc, i)
		if n == 0 {
			return nil, "", fmt.Errorf("invalid parameter at offset %d in method descriptor %q", i, desc)
		}
		params = append(params, desc[i:i+n])
		i += n
	}
	if i >= len(desc) {
		return nil, "", fmt.Errorf("unterminated parameter list in method descriptor %q", desc)
	}
	i++
	if i < len(desc) && desc[i] == 'V' && i+1 == len(desc) {
		return params, "V", nil
	}
	if n := fieldTypeLength(desc, i); n > 0 && i+n == len(desc) {
		return params, desc[i:], nil
	}
	return nil, "", fmt.Errorf("invalid return type in method descriptor %q", desc)
}

// fieldTypeLength returns the length of the field descriptor starting at
// start, or 0 if there is none.
func fieldTypeLength(desc string, start int) int {
	i := start
	for i < len(desc) && desc[i] == '[' {
		i++
	}
	if i >= len(desc) {
		return 0
	}
	switch desc[i] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return i - start + 1
	case 'L':
		semicolon := strings.IndexByte(desc[i:], ';')
		if semicolon <= 1 {
			return 0
		}
		return i - start + semicolon + 1
	}
	return 0
}

// IsFieldDescriptor reports whether desc is exactly one field descriptor.
func IsFieldDescriptor(desc string) bool {
	n := fieldTypeLength(desc, 0)
	return n > 0 && n == len(desc)
}

// PrimitiveName maps a base type or void descriptor to its source keyword.
func PrimitiveName(desc string) (string, bool) {
	switch desc {
	case "B":
		return "byte", true
	case "C":
		return "char", true
	case "D":
		return "double", true
	case "F":
		return "float", true
	case "I":
		return "int", true
	case "J":
		return "long", true
	case "S":
		return "short", true
	case "Z":
		return "boolean", true
	case "V":
		return "void", true
	}
	return "", false
}

// ObjectDescriptor returns "Lname;" for an internal or dotted class name.
func ObjectDescriptor(name string) string {
	return "L" + SourceToInternalName(name) + ";"
}

func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}
