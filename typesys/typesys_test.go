package typesys

import (
	"errors"
	"testing"

	"github.com/dhamidi/vrapper/classfile"
	"github.com/dhamidi/vrapper/classsource"
)

const (
	str  = "Ljava/lang/String;"
	conn = "Lcom/vaadin/client/ApplicationConnection;"
)

func fixtureRegistry(t *testing.T, builders ...*classfile.Builder) *Registry {
	t.Helper()
	mem := classsource.NewMemory()
	for _, b := range builders {
		mem.PutClass(b)
	}
	return NewRegistry(classsource.NewChain(mem, classsource.NewBootstrap()))
}

func beanFixtures() []*classfile.Builder {
	return []*classfile.Builder{
		classfile.NewBuilder("com.example.NoSetters", "java/lang/Object").
			PublicMethod("getName", "()"+str),
		classfile.NewBuilder("com.example.Person", "java/lang/Object").
			PublicMethod("setName", "("+str+")V").
			PublicMethod("getName", "()"+str),
		classfile.NewBuilder("com.example.WriteOnly", "java/lang/Object").
			PublicMethod("setName", "("+str+")V"),
		classfile.NewBuilder("com.example.Holder", "java/lang/Object").
			PublicMethod("setConnection", "("+conn+")V").
			PublicMethod("getConnection", "()"+conn),
		classfile.NewBuilder("com.example.Color", "java/lang/Enum").
			Access(classfile.AccPublic|classfile.AccFinal|classfile.AccSuper|classfile.AccEnum),
		classfile.NewBuilder("com.google.gwt.core.client.JavaScriptObject", "java/lang/Object"),
		classfile.NewBuilder("com.example.Overlay", "com/google/gwt/core/client/JavaScriptObject").
			PublicMethod("setName", "("+str+")V").
			PublicMethod("getName", "()"+str),
		classfile.NewBuilder("com.example.Node", "java/lang/Object").
			PublicMethod("setNext", "(Lcom/example/Node;)V").
			PublicMethod("getNext", "()Lcom/example/Node;").
			PublicMethod("setVisible", "(Z)V").
			PublicMethod("isVisible", "()Z"),
		classfile.NewBuilder("com.example.Team", "java/lang/Object").
			PublicMethod("setLead", "(Lcom/example/Person;)V").
			PublicMethod("getLead", "()Lcom/example/Person;").
			PublicMethod("setMembers", "([Lcom/example/Person;)V").
			PublicMethod("getMembers", "()[Lcom/example/Person;"),
		classfile.NewBuilder("com.example.Club", "java/lang/Object").
			PublicMethod("setTeam", "(Lcom/example/Team;)V").
			PublicMethod("getTeam", "()Lcom/example/Team;").
			PublicMethod("setHolder", "(Lcom/example/Holder;)V").
			PublicMethod("getHolder", "()Lcom/example/Holder;"),
		classfile.NewBuilder("com.example.Broken", "java/lang/Object").
			PublicMethod("setPeer", "(Lcom/example/Missing;)V").
			PublicMethod("getPeer", "()Lcom/example/Missing;"),
	}
}

func TestTypeFor(t *testing.T) {
	r := fixtureRegistry(t)

	t.Run("interned", func(t *testing.T) {
		a, err := r.TypeFor("Ljava/lang/String;")
		if err != nil {
			t.Fatal(err)
		}
		b := r.ObjectType("java.lang.String")
		if a != Type(b) {
			t.Error("TypeFor and ObjectType should return the same instance")
		}
	})

	t.Run("array", func(t *testing.T) {
		typ, err := r.TypeFor("[[Ljava/util/List;")
		if err != nil {
			t.Fatal(err)
		}
		array, ok := typ.(*ArrayType)
		if !ok {
			t.Fatalf("TypeFor returned %T, want *ArrayType", typ)
		}
		if array.Dimensions() != 2 {
			t.Errorf("Dimensions() = %d, want 2", array.Dimensions())
		}
		if array.Elem() != Type(r.ObjectType("java/util/List")) {
			t.Errorf("Elem() = %v", array.Elem())
		}
		if got := array.ClassName(); got != "java.util.List[][]" {
			t.Errorf("ClassName() = %q", got)
		}
		if got := array.SimpleName(); got != "List[][]" {
			t.Errorf("SimpleName() = %q", got)
		}
	})

	t.Run("primitives", func(t *testing.T) {
		tests := []struct{ desc, name string }{
			{"I", "int"}, {"Z", "boolean"}, {"J", "long"}, {"V", "void"},
		}
		for _, tt := range tests {
			typ, err := r.TypeFor(tt.desc)
			if err != nil {
				t.Fatalf("TypeFor(%q): %v", tt.desc, err)
			}
			if typ.ClassName() != tt.name {
				t.Errorf("TypeFor(%q).ClassName() = %q, want %q", tt.desc, typ.ClassName(), tt.name)
			}
		}
		if !IsVoid(r.Void()) {
			t.Error("Void() should be void")
		}
		p, err := r.Primitive("double")
		if err != nil || p.Descriptor() != "D" {
			t.Errorf("Primitive(double) = %v, %v", p, err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, desc := range []string{"", "Q", "II", "Ljava/lang/String"} {
			if _, err := r.TypeFor(desc); err == nil {
				t.Errorf("TypeFor(%q) should fail", desc)
			}
		}
	})

	t.Run("nested names", func(t *testing.T) {
		c := r.ObjectType("com.example.Outer$Inner")
		if got := c.SimpleName(); got != "Outer.Inner" {
			t.Errorf("SimpleName() = %q", got)
		}
		if got := c.ClassName(); got != "com.example.Outer$Inner" {
			t.Errorf("ClassName() = %q", got)
		}
		if got := c.PackageName(); got != "com.example" {
			t.Errorf("PackageName() = %q", got)
		}
		if got := r.ObjectType("Bare").PackageName(); got != "" {
			t.Errorf("PackageName() of default package = %q", got)
		}
	})
}

func TestClassType(t *testing.T) {
	r := fixtureRegistry(t)

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"com.example.client.VSlider", false},
		{"com/example/client/VSlider", false},
		{"com.example.client.VSlider$Handle", false},
		{"", true},
		{"a;b", true},
		{"com..Slider", true},
		{"com.example.", true},
		{"[I", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := r.ClassType(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ClassType(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err == nil && c != r.ObjectType(tt.name) {
				t.Errorf("ClassType(%q) is not the interned ObjectType", tt.name)
			}
		})
	}
}

func TestIsSerializable(t *testing.T) {
	r := fixtureRegistry(t, beanFixtures()...)

	tests := []struct {
		desc string
		want bool
	}{
		{"I", true},
		{"Z", true},
		{"[D", true},
		{"Ljava/lang/String;", true},
		{"Ljava/util/Date;", true},
		{conn, false},
		{"Lcom/example/NoSetters;", false},
		{"Lcom/example/Person;", true},
		{"[Lcom/example/Person;", true},
		{"Lcom/example/WriteOnly;", false},
		{"Lcom/example/Holder;", false},
		{"Lcom/example/Color;", true},
		{"Lcom/example/Overlay;", false},
		{"Lcom/example/Node;", true},
		{"Lcom/example/Team;", true},
		{"Lcom/example/Club;", false},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			typ, err := r.TypeFor(tt.desc)
			if err != nil {
				t.Fatal(err)
			}
			got, err := r.IsSerializable(typ)
			if err != nil {
				t.Fatalf("IsSerializable(%s): %v", tt.desc, err)
			}
			if got != tt.want {
				t.Errorf("IsSerializable(%s) = %v, want %v", tt.desc, got, tt.want)
			}
		})
	}

	t.Run("memoized", func(t *testing.T) {
		if ok, known := r.serializable["Lcom/example/Person;"]; !known || !ok {
			t.Error("Person should be memoized as serializable")
		}
		if ok, known := r.serializable["Lcom/example/Club;"]; !known || ok {
			t.Error("Club should be memoized as not serializable")
		}
	})

	t.Run("load failure", func(t *testing.T) {
		_, err := r.IsSerializable(r.ObjectType("com.example.Broken"))
		if !errors.Is(err, ErrClassNotFound) {
			t.Errorf("IsSerializable(Broken) error = %v, want ErrClassNotFound", err)
		}
		if _, known := r.serializable["Lcom/example/Broken;"]; known {
			t.Error("a failed check should not be memoized")
		}
	})
}

func TestClassTypeLoading(t *testing.T) {
	iface := classfile.AccPublic | classfile.AccInterface | classfile.AccAbstract
	r := fixtureRegistry(t,
		classfile.NewBuilder("com.example.Base", "java/lang/Object").
			Access(classfile.AccPublic|classfile.AccAbstract|classfile.AccSuper).
			PublicMethod("foo", "()V").
			PublicMethod("bar", "(I)V").
			Method(classfile.AccPublic|classfile.AccStatic, "create", "()Lcom/example/Base;").
			Method(classfile.AccPublic, "<init>", "()V").
			Method(classfile.AccPrivate, "secret", "()V"),
		classfile.NewBuilder("com.example.Sub", "com/example/Base").
			PublicMethod("foo", "()V").
			PublicMethod("baz", "("+str+")"+str),
		classfile.NewBuilder("com.example.Orphan", "com/example/Gone").
			PublicMethod("only", "()V"),
		classfile.NewBuilder("com.example.Ping", "com/example/Pong"),
		classfile.NewBuilder("com.example.Pong", "com/example/Ping"),
		classfile.NewBuilder("com.example.Compiled", "java/lang/Object").
			PublicMethod("compareTo", "(Lcom/example/Compiled;)I").
			Method(classfile.AccPublic|classfile.AccBridge|classfile.AccSynthetic, "compareTo", "(Ljava/lang/Object;)I").
			Method(classfile.AccPublic|classfile.AccSynthetic, "access$000", "()V"),
		classfile.NewBuilder("com.example.EventHandler", "java/lang/Object").Access(iface),
		classfile.NewBuilder("com.example.BaseHandler", "java/lang/Object").Access(iface).
			Interface("com/example/EventHandler").
			AbstractMethod("onEvent", "(Ljava/lang/Object;)V"),
		classfile.NewBuilder("com.example.ClickHandler", "java/lang/Object").Access(iface).
			Interface("com/example/BaseHandler").
			Interface("com/example/Unknown"),
	)

	t.Run("override merge", func(t *testing.T) {
		sub := r.ObjectType("com.example.Sub")
		methods, err := sub.Methods()
		if err != nil {
			t.Fatal(err)
		}
		count := make(map[string]int)
		for _, m := range methods {
			count[m.Name()]++
			if m.Name() == "foo" && m.DeclaringType() != sub {
				t.Errorf("foo declared by %s, want Sub", m.DeclaringType().ClassName())
			}
			if m.Name() == "bar" && m.DeclaringType().ClassName() != "com.example.Base" {
				t.Errorf("bar declared by %s, want Base", m.DeclaringType().ClassName())
			}
		}
		if count["foo"] != 1 {
			t.Errorf("foo appears %d times, want 1", count["foo"])
		}
		for _, hidden := range []string{"create", "<init>", "secret"} {
			if count[hidden] != 0 {
				t.Errorf("%s should not be collected", hidden)
			}
		}
		if count["hashCode"] != 1 {
			t.Error("Object methods should be inherited")
		}
		if methods[0].Name() != "foo" || methods[1].Name() != "baz" {
			t.Errorf("own methods should come first, got %s, %s", methods[0], methods[1])
		}
	})

	t.Run("bridge and synthetic methods", func(t *testing.T) {
		methods, err := r.ObjectType("com.example.Compiled").DeclaredMethods()
		if err != nil {
			t.Fatal(err)
		}
		if len(methods) != 1 || methods[0].Descriptor() != "(Lcom/example/Compiled;)I" {
			t.Errorf("DeclaredMethods() = %v, want only compareTo(Compiled)", methods)
		}
	})

	t.Run("super interfaces", func(t *testing.T) {
		click := r.ObjectType("com.example.ClickHandler")
		methods, err := click.Methods()
		if err != nil {
			t.Fatal(err)
		}
		var names []string
		for _, m := range methods {
			if m.DeclaringType().ClassName() != "java.lang.Object" {
				names = append(names, m.Name())
			}
		}
		if len(names) != 1 || names[0] != "onEvent" {
			t.Errorf("interface methods = %v, want [onEvent]", names)
		}
		if ok, err := click.IsInterface(); err != nil || !ok {
			t.Errorf("IsInterface() = %v, %v", ok, err)
		}
	})

	t.Run("modifiers", func(t *testing.T) {
		abstract, err := r.ObjectType("com.example.Base").IsAbstract()
		if err != nil || !abstract {
			t.Errorf("Base.IsAbstract() = %v, %v", abstract, err)
		}
		public, err := r.ObjectType("com.example.Sub").IsPublic()
		if err != nil || !public {
			t.Errorf("Sub.IsPublic() = %v, %v", public, err)
		}
	})

	t.Run("is or extends", func(t *testing.T) {
		sub := r.ObjectType("com.example.Sub")
		for _, name := range []string{"com.example.Sub", "com.example.Base", "java.lang.Object"} {
			ok, err := sub.IsOrExtends(r.ObjectType(name))
			if err != nil || !ok {
				t.Errorf("Sub.IsOrExtends(%s) = %v, %v", name, ok, err)
			}
		}
		ok, err := r.ObjectType("com.example.Base").IsOrExtends(sub)
		if err != nil || ok {
			t.Errorf("Base.IsOrExtends(Sub) = %v, %v", ok, err)
		}
	})

	t.Run("missing class", func(t *testing.T) {
		missing := r.ObjectType("com.example.Missing")
		_, err := missing.Methods()
		if !errors.Is(err, ErrClassNotFound) {
			t.Fatalf("Methods() error = %v, want ErrClassNotFound", err)
		}
		if _, again := missing.SuperType(); again != err {
			t.Errorf("load error should be cached, got %v", again)
		}
	})

	t.Run("missing super ends chain", func(t *testing.T) {
		orphan := r.ObjectType("com.example.Orphan")
		methods, err := orphan.Methods()
		if err != nil {
			t.Fatalf("Methods(): %v", err)
		}
		if len(methods) != 1 {
			t.Errorf("len(Methods()) = %d, want 1", len(methods))
		}
		super, err := orphan.SuperType()
		if err != nil || super != nil {
			t.Errorf("SuperType() = %v, %v, want nil", super, err)
		}
		name, _ := orphan.SuperName()
		if name != "com.example.Gone" {
			t.Errorf("SuperName() = %q", name)
		}
	})

	t.Run("cyclic super", func(t *testing.T) {
		ping := r.ObjectType("com.example.Ping")
		if _, err := ping.Methods(); err != nil {
			t.Fatalf("Methods(): %v", err)
		}
		ok, err := ping.IsOrExtends(r.ObjectType("java.lang.Object"))
		if err != nil || ok {
			t.Errorf("IsOrExtends(Object) = %v, %v, want false", ok, err)
		}
	})
}

func TestMethod(t *testing.T) {
	r := fixtureRegistry(t, classfile.NewBuilder("com.example.client.VPanel", "java/lang/Object").
		PublicMethod("setCaption", "("+str+"[I)Z"))

	methods, err := r.ObjectType("com.example.client.VPanel").DeclaredMethods()
	if err != nil {
		t.Fatal(err)
	}
	if len(methods) != 1 {
		t.Fatalf("len(DeclaredMethods()) = %d", len(methods))
	}
	m := methods[0]
	if got := m.SourceString(); got != "boolean setCaption(String, int[])" {
		t.Errorf("SourceString() = %q", got)
	}
	if len(m.ParameterTypes()) != 2 || m.ReturnsVoid() {
		t.Errorf("ParameterTypes() = %v, ReturnType() = %v", m.ParameterTypes(), m.ReturnType())
	}
	if !m.Equal(methods[0]) || m.Equal(nil) {
		t.Error("Equal mismatch")
	}
}

func TestPropertyName(t *testing.T) {
	tests := []struct{ method, want string }{
		{"setColor", "color"},
		{"getColor", "color"},
		{"isVisible", "visible"},
		{"setURL", "uRL"},
		{"fireClick", "fireClick"},
		{"set", "set"},
		{"is", "is"},
	}
	for _, tt := range tests {
		if got := PropertyName(tt.method); got != tt.want {
			t.Errorf("PropertyName(%q) = %q, want %q", tt.method, got, tt.want)
		}
	}
}
