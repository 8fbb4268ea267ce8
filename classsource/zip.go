package classsource

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
)

// Zip reads classes from a jar or zip archive. The archive stays open until
// Close.
type Zip struct {
	path    string
	reader  *zip.ReadCloser
	entries map[string]*zip.File
}

func OpenZip(file string) (*Zip, error) {
	r, err := zip.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("open zip %s: %w", file, err)
	}
	z := &Zip{path: file, reader: r, entries: make(map[string]*zip.File)}
	for _, f := range r.File {
		if f.FileInfo().IsDir() || path.Ext(f.Name) != ".class" {
			continue
		}
		z.entries[f.Name] = f
	}
	log.Debugf("opened %s with %d classes", file, len(z.entries))
	return z, nil
}

func (z *Zip) Find(name string) ([]byte, bool, error) {
	f, ok := z.entries[entryName(name)]
	if !ok {
		return nil, false, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, false, fmt.Errorf("open %s in %s: %w", f.Name, z.path, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, fmt.Errorf("read %s in %s: %w", f.Name, z.path, err)
	}
	return data, true, nil
}

// Classes lists the dotted names of the classes in the archive.
func (z *Zip) Classes() []string {
	names := make([]string, 0, len(z.entries))
	for entry := range z.entries {
		names = append(names, className(entry))
	}
	return names
}

func (z *Zip) Close() error {
	return z.reader.Close()
}

func (z *Zip) String() string { return z.path }
