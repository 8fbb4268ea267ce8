package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/vrapper/classfile"
	"github.com/dhamidi/vrapper/classsource"
	"github.com/dhamidi/vrapper/codegen"
	"github.com/dhamidi/vrapper/config"
	"github.com/dhamidi/vrapper/typesys"
	"github.com/dhamidi/vrapper/widget"
)

const gwtWidget = "com/google/gwt/user/client/ui/Widget"

func testSession(t *testing.T) *session {
	t.Helper()
	iface := classfile.AccPublic | classfile.AccInterface | classfile.AccAbstract
	mem := classsource.NewMemory().
		PutClass(classfile.NewBuilder(gwtWidget, "java/lang/Object")).
		PutClass(classfile.NewBuilder("com.example.client.SlideEvent", "java/lang/Object").
			PublicMethod("getValue", "()I")).
		PutClass(classfile.NewBuilder("com.example.client.SlideHandler", "java/lang/Object").Access(iface).
			AbstractMethod("onSlide", "(Lcom/example/client/SlideEvent;)V")).
		PutClass(classfile.NewBuilder("com.example.client.VSlider", gwtWidget).
			PublicMethod("setColor", "(Ljava/lang/String;)V").
			PublicMethod("addSlideHandler", "(Lcom/example/client/SlideHandler;)V"))
	chain := classsource.NewChain(mem, classsource.NewBootstrap())
	return &session{
		chain: chain,
		types: typesys.NewRegistry(chain),
		opts:  &globalOptions{config: config.Default()},
	}
}

func TestClassNames(t *testing.T) {
	s := testSession(t)
	names, err := s.classNames()
	if err != nil {
		t.Fatal(err)
	}
	found := widget.Discover(s.types, names)
	if len(found) != 1 || found[0].ClassName() != "com.example.client.VSlider" {
		t.Errorf("discovered %v, want only VSlider", found)
	}
}

func TestSplitAssignment(t *testing.T) {
	tests := []struct {
		in, method, value string
		wantErr           bool
	}{
		{"setColor=client-rpc", "setColor", "client-rpc", false},
		{"setRange(II)V=state-field", "setRange(II)V", "state-field", false},
		{"addSlideHandler=", "addSlideHandler", "", false},
		{"setColor", "", "", true},
		{"=client-rpc", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			method, value, err := splitAssignment(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("splitAssignment(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if method != tt.method || value != tt.value {
				t.Errorf("splitAssignment(%q) = %q, %q, want %q, %q", tt.in, method, value, tt.method, tt.value)
			}
		})
	}
}

func TestParseParam(t *testing.T) {
	tests := []struct {
		in, kind, option, name string
	}{
		{"", "", "", ""},
		{"mouse-details", "mouse-details", "", ""},
		{"event-method/getValue", "event-method", "getValue", ""},
		{"event-method/getValue/value", "event-method", "getValue", "value"},
	}
	for _, tt := range tests {
		kind, option, name := parseParam(tt.in)
		if kind != tt.kind || option != tt.option || name != tt.name {
			t.Errorf("parseParam(%q) = %q, %q, %q, want %q, %q, %q", tt.in, kind, option, name, tt.kind, tt.option, tt.name)
		}
	}
}

func TestSetQualifiedName(t *testing.T) {
	cfg := &codegen.CodeConfiguration{ClassName: "Slider", PackageName: "com.example"}
	setQualifiedName(cfg, "")
	if got := cfg.QualifiedName(); got != "com.example.Slider" {
		t.Errorf("empty name changed configuration to %q", got)
	}
	setQualifiedName(cfg, "org.demo.ui.FancySlider")
	if cfg.PackageName != "org.demo.ui" || cfg.ClassName != "FancySlider" {
		t.Errorf("got %q %q, want org.demo.ui FancySlider", cfg.PackageName, cfg.ClassName)
	}
	setQualifiedName(cfg, "Bare")
	if got := cfg.QualifiedName(); got != "Bare" {
		t.Errorf("QualifiedName() = %q, want Bare", got)
	}
}

func TestChoicesApply(t *testing.T) {
	s := testSession(t)
	c, err := s.configuration("com.example.client.VSlider")
	if err != nil {
		t.Fatal(err)
	}

	ch := choices{
		selects:   []string{"setColor=client-rpc", "addSlideHandler=event-handler"},
		params:    []string{"addSlideHandler=event-method/getValue/value"},
		component: "com.example.FancySlider",
	}
	if err := ch.apply(c); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if got := c.ComponentConfig().QualifiedName(); got != "com.example.FancySlider" {
		t.Errorf("component = %q, want com.example.FancySlider", got)
	}
	mc, _ := c.Method("setColor")
	if a := mc.Selected(); a == nil || a.Kind() != widget.ClientRPCKind {
		t.Errorf("setColor selected %v, want client-rpc", a)
	}
	mc, _ = c.Method("addSlideHandler")
	handler := mc.Action(widget.EventHandlerKind).(*widget.EventHandler)
	params := handler.Parameters()
	if len(params) != 1 || params[0].Name != "value" {
		t.Errorf("parameters = %+v, want one named value", params)
	}

	t.Run("unknown method", func(t *testing.T) {
		bad := choices{selects: []string{"missing=client-rpc"}}
		if err := bad.apply(c); err == nil {
			t.Error("expected error for unknown method")
		}
	})
	t.Run("param on non handler", func(t *testing.T) {
		bad := choices{params: []string{"setColor=event-method"}}
		if err := bad.apply(c); err == nil {
			t.Error("expected error for parameter on setColor")
		}
	})
	t.Run("unknown kind", func(t *testing.T) {
		bad := choices{selects: []string{"setColor=telepathy"}}
		if err := bad.apply(c); err == nil {
			t.Error("expected error for unknown action kind")
		}
	})
}

func TestPrintMethods(t *testing.T) {
	s := testSession(t)
	c, err := s.configuration("com.example.client.VSlider")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	printMethods(&buf, c, true)
	out := buf.String()
	for _, want := range []string{
		"com.example.client.VSlider\n",
		"  component: com.example.Slider\n",
		"\nvoid setColor(String)\n",
		"  * state-field ",
		"Define in shared state",
		"  - ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteClass(t *testing.T) {
	s := testSession(t)
	c, err := s.configuration("com.example.client.VSlider")
	if err != nil {
		t.Fatal(err)
	}
	classes, err := c.Generate()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, g := range classes {
		path, err := writeClass(dir, g)
		if err != nil {
			t.Fatal(err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), g.ClassName()) {
			t.Errorf("%s does not mention %s", path, g.ClassName())
		}
	}

	want := filepath.Join(dir, "com", "example", "Slider.java")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("component source not written: %v", err)
	}
}

func TestConfigurationInvalidName(t *testing.T) {
	s := testSession(t)
	for _, name := range []string{"", "a;b"} {
		if _, err := s.configuration(name); err == nil {
			t.Errorf("configuration(%q) succeeded, want an error", name)
		}
	}
}

func TestPreviewImpossibleAction(t *testing.T) {
	s := testSession(t)
	c, err := s.configuration("com.example.client.VSlider")
	if err != nil {
		t.Fatal(err)
	}
	a, err := previewAction(c, "setColor", "event-handler")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Preview(a, true); !errors.Is(err, widget.ErrImpossibleAction) {
		t.Errorf("Preview(%s) = %v, want ErrImpossibleAction", a.Kind(), err)
	}
}

func TestConnectorNamedLikeComponent(t *testing.T) {
	s := testSession(t)
	c, err := s.configuration("com.example.client.VSlider")
	if err != nil {
		t.Fatal(err)
	}
	ch := choices{connector: c.ComponentConfig().QualifiedName()}
	if err := ch.apply(c); err != nil {
		t.Fatal(err)
	}
	if _, err := c.BuildFullSource(); !errors.Is(err, codegen.ErrConflict) {
		t.Errorf("BuildFullSource() = %v, want ErrConflict", err)
	}
}
