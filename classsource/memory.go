package classsource

import (
	"sort"

	"github.com/dhamidi/vrapper/classfile"
)

// Memory serves class files held in memory.
type Memory struct {
	classes map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{classes: make(map[string][]byte)}
}

func (m *Memory) Put(name string, data []byte) *Memory {
	m.classes[entryName(name)] = data
	return m
}

// PutClass assembles b and stores it under its own name.
func (m *Memory) PutClass(b *classfile.Builder) *Memory {
	return m.Put(b.Name(), b.Bytes())
}

func (m *Memory) Find(name string) ([]byte, bool, error) {
	data, ok := m.classes[entryName(name)]
	return data, ok, nil
}

// Classes lists the dotted names of the stored classes in sorted order.
func (m *Memory) Classes() []string {
	names := make([]string, 0, len(m.classes))
	for entry := range m.classes {
		names = append(names, className(entry))
	}
	sort.Strings(names)
	return names
}

func (m *Memory) Close() error { return nil }
