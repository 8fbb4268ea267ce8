// Package classsource locates class file bytes by class name. A Source may be
// backed by a directory tree, a jar, memory, or a chain of other sources.
package classsource

import (
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/vrapper/classfile"
)

var log = commonlog.GetLogger("vrapper.classsource")

// Source finds the bytes of a class file. Find reports ok=false with a nil
// error when the class is simply not there; a non-nil error means the source
// could not be read.
type Source interface {
	Find(name string) (data []byte, ok bool, err error)
	Close() error
}

// entryName maps a dotted or internal class name to its relative path,
// e.g. "com.example.Foo" -> "com/example/Foo.class".
func entryName(name string) string {
	name = strings.TrimSuffix(name, ".class")
	return classfile.SourceToInternalName(name) + ".class"
}

// className is the inverse of entryName.
func className(entry string) string {
	return classfile.InternalToSourceName(strings.TrimSuffix(entry, ".class"))
}
