package classsource

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/dhamidi/vrapper/classfile"
)

type fakeSource struct {
	name     string
	classes  map[string][]byte
	findErr  error
	closeErr error
	closed   bool
}

func (f *fakeSource) Find(name string) ([]byte, bool, error) {
	if f.findErr != nil {
		return nil, false, f.findErr
	}
	data, ok := f.classes[name]
	return data, ok, nil
}

func (f *fakeSource) Close() error {
	f.closed = true
	return f.closeErr
}

func (f *fakeSource) String() string { return f.name }

func writeJar(t *testing.T, path string, classes map[string][]byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create jar: %v", err)
	}
	w := zip.NewWriter(f)
	for name, data := range classes {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		if _, err := entry.Write(data); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close jar: %v", err)
	}
}

func TestMemoryFind(t *testing.T) {
	m := NewMemory().PutClass(classfile.NewBuilder("com.example.client.VButton", "java/lang/Object"))

	for _, name := range []string{"com.example.client.VButton", "com/example/client/VButton"} {
		t.Run(name, func(t *testing.T) {
			data, ok, err := m.Find(name)
			if err != nil || !ok {
				t.Fatalf("Find(%q) = ok %v, err %v", name, ok, err)
			}
			cf, err := classfile.ParseBytes(data)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := cf.ClassName(); got != "com/example/client/VButton" {
				t.Errorf("ClassName() = %q", got)
			}
		})
	}

	if _, ok, err := m.Find("com.example.Missing"); ok || err != nil {
		t.Errorf("Find(missing) = ok %v, err %v, want absent", ok, err)
	}
	if got := m.Classes(); len(got) != 1 || got[0] != "com.example.client.VButton" {
		t.Errorf("Classes() = %v", got)
	}
}

func TestDirFind(t *testing.T) {
	root := t.TempDir()
	data := classfile.NewBuilder("com/example/Foo", "java/lang/Object").Bytes()
	if err := os.MkdirAll(filepath.Join(root, "com", "example"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "com", "example", "Foo.class"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	d := NewDir(root)

	got, ok, err := d.Find("com.example.Foo")
	if err != nil || !ok {
		t.Fatalf("Find = ok %v, err %v", ok, err)
	}
	if len(got) != len(data) {
		t.Errorf("Find returned %d bytes, want %d", len(got), len(data))
	}
	if _, ok, err := d.Find("com.example.Bar"); ok || err != nil {
		t.Errorf("Find(missing) = ok %v, err %v, want absent", ok, err)
	}

	names, err := d.Classes()
	if err != nil {
		t.Fatalf("Classes: %v", err)
	}
	if len(names) != 1 || names[0] != "com.example.Foo" {
		t.Errorf("Classes() = %v", names)
	}
}

func TestZipFind(t *testing.T) {
	jar := filepath.Join(t.TempDir(), "widgets.jar")
	writeJar(t, jar, map[string][]byte{
		"com/example/client/VSlider.class": classfile.NewBuilder("com/example/client/VSlider", "java/lang/Object").Bytes(),
		"META-INF/MANIFEST.MF":             []byte("Manifest-Version: 1.0\n"),
	})

	z, err := OpenZip(jar)
	if err != nil {
		t.Fatalf("OpenZip: %v", err)
	}
	defer z.Close()

	if _, ok, err := z.Find("com.example.client.VSlider"); !ok || err != nil {
		t.Errorf("Find = ok %v, err %v", ok, err)
	}
	if _, ok, _ := z.Find("META-INF.MANIFEST"); ok {
		t.Error("non-class entries should not be found")
	}
	if got := z.Classes(); len(got) != 1 || got[0] != "com.example.client.VSlider" {
		t.Errorf("Classes() = %v", got)
	}
}

func TestChainFind(t *testing.T) {
	first := &fakeSource{name: "first", classes: map[string][]byte{"A": []byte("first")}}
	second := &fakeSource{name: "second", classes: map[string][]byte{"A": []byte("second"), "B": []byte("b")}}
	chain := NewChain(first, second)

	t.Run("first hit wins", func(t *testing.T) {
		data, ok, err := chain.Find("A")
		if err != nil || !ok {
			t.Fatalf("Find(A) = ok %v, err %v", ok, err)
		}
		if string(data) != "first" {
			t.Errorf("Find(A) = %q, want %q", data, "first")
		}
	})

	t.Run("falls through", func(t *testing.T) {
		data, ok, _ := chain.Find("B")
		if !ok || string(data) != "b" {
			t.Errorf("Find(B) = %q, %v", data, ok)
		}
	})

	t.Run("absent", func(t *testing.T) {
		if _, ok, err := chain.Find("C"); ok || err != nil {
			t.Errorf("Find(C) = ok %v, err %v, want absent", ok, err)
		}
	})

	t.Run("error propagates", func(t *testing.T) {
		boom := errors.New("disk on fire")
		broken := NewChain(&fakeSource{findErr: boom}, second)
		if _, _, err := broken.Find("B"); !errors.Is(err, boom) {
			t.Errorf("Find error = %v, want %v", err, boom)
		}
	})
}

func TestChainClose(t *testing.T) {
	errA := errors.New("a failed")
	errC := errors.New("c failed")
	a := &fakeSource{name: "a", closeErr: errA}
	b := &fakeSource{name: "b"}
	c := &fakeSource{name: "c", closeErr: errC}

	err := NewChain(a, b, c).Close()
	for _, s := range []*fakeSource{a, b, c} {
		if !s.closed {
			t.Errorf("source %s was not closed", s.name)
		}
	}

	var cerr *CloseError
	if !errors.As(err, &cerr) {
		t.Fatalf("Close() = %v, want *CloseError", err)
	}
	if cerr.First != errA {
		t.Errorf("First = %v, want %v", cerr.First, errA)
	}
	if len(cerr.Others) != 1 || cerr.Others[0] != errC {
		t.Errorf("Others = %v, want [%v]", cerr.Others, errC)
	}
	if !errors.Is(err, errA) || !errors.Is(err, errC) {
		t.Error("errors.Is should see every close failure")
	}

	if err := NewChain(b).Close(); err != nil {
		t.Errorf("Close() = %v, want nil", err)
	}
}

func TestOpen(t *testing.T) {
	root := t.TempDir()
	classes := filepath.Join(root, "classes")
	lib := filepath.Join(root, "lib")
	for _, dir := range []string{filepath.Join(classes, "app"), lib} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(classes, "app", "Main.class"), classfile.NewBuilder("app/Main", "java/lang/Object").Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	writeJar(t, filepath.Join(lib, "one.jar"), map[string][]byte{
		"one/One.class": classfile.NewBuilder("one/One", "java/lang/Object").Bytes(),
	})
	writeJar(t, filepath.Join(lib, "two.jar"), map[string][]byte{
		"two/Two.class": classfile.NewBuilder("two/Two", "java/lang/Object").Bytes(),
	})

	chain, err := Open(classes, filepath.Join(lib, "*"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer chain.Close()

	if n := len(chain.Sources()); n != 3 {
		t.Errorf("len(Sources()) = %d, want 3", n)
	}
	var found []string
	for _, name := range []string{"app.Main", "one.One", "two.Two"} {
		if _, ok, err := chain.Find(name); ok && err == nil {
			found = append(found, name)
		}
	}
	sort.Strings(found)
	if len(found) != 3 {
		t.Errorf("found %v, want all three classes", found)
	}

	t.Run("list separator", func(t *testing.T) {
		joined := classes + string(os.PathListSeparator) + filepath.Join(lib, "one.jar")
		c, err := Open(joined)
		if err != nil {
			t.Fatalf("Open(%q): %v", joined, err)
		}
		defer c.Close()
		if n := len(c.Sources()); n != 2 {
			t.Errorf("len(Sources()) = %d, want 2", n)
		}
	})

	t.Run("missing entry", func(t *testing.T) {
		if _, err := Open(filepath.Join(root, "nope.jar")); err == nil {
			t.Error("expected error for missing classpath entry")
		}
	})
}

func TestBootstrap(t *testing.T) {
	b := NewBootstrap()
	tests := []struct {
		name  string
		super string
	}{
		{"java.lang.Object", ""},
		{"java.lang.String", "java/lang/Object"},
		{"java.lang.Integer", "java/lang/Number"},
		{"java.lang.Boolean", "java/lang/Object"},
		{"java.util.List", "java/lang/Object"},
		{"java.lang.Enum", "java/lang/Object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, ok, err := b.Find(tt.name)
			if err != nil || !ok {
				t.Fatalf("Find(%q) = ok %v, err %v", tt.name, ok, err)
			}
			cf, err := classfile.ParseBytes(data)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := cf.SuperClassName(); got != tt.super {
				t.Errorf("SuperClassName() = %q, want %q", got, tt.super)
			}
		})
	}

	data, _, _ := b.Find("java.util.Map")
	cf, err := classfile.ParseBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	if !cf.IsInterface() {
		t.Error("java.util.Map should be an interface")
	}
}
