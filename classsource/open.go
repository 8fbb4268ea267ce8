package classsource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Open builds a chain from classpath entries. Each entry may itself be a
// list separated by the OS path-list separator. Entries ending in .jar or
// .zip open as archives, directories as class trees, and "dir/*" expands to
// every jar in dir. On failure, sources opened so far are closed.
func Open(entries ...string) (*Chain, error) {
	chain := NewChain()
	for _, entry := range entries {
		for _, path := range filepath.SplitList(entry) {
			sources, err := openEntry(path)
			if err != nil {
				_ = chain.Close()
				return nil, err
			}
			chain.Append(sources...)
		}
	}
	return chain, nil
}

func openEntry(path string) ([]Source, error) {
	if dir, ok := strings.CutSuffix(path, "*"); ok {
		return openJarDir(filepath.Clean(dir))
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("classpath entry %s: %w", path, err)
	}
	if info.IsDir() {
		log.Debugf("classpath directory %s", path)
		return []Source{NewDir(path)}, nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jar", ".zip":
		z, err := OpenZip(path)
		if err != nil {
			return nil, err
		}
		return []Source{z}, nil
	}
	return nil, fmt.Errorf("classpath entry %s: not a directory, jar or zip", path)
}

func openJarDir(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read lib directory %s: %w", dir, err)
	}
	var sources []Source
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jar" {
			continue
		}
		z, err := OpenZip(filepath.Join(dir, entry.Name()))
		if err != nil {
			for _, s := range sources {
				_ = s.Close()
			}
			return nil, err
		}
		sources = append(sources, z)
	}
	return sources, nil
}
