package classsource

import (
	"github.com/dhamidi/vrapper/classfile"
)

const (
	object = "java/lang/Object"
	str    = "Ljava/lang/String;"
	obj    = "Ljava/lang/Object;"
)

// Bootstrap stands in for the platform classes a JVM would provide: enough
// of java.lang and java.util for super chains to terminate and for the
// serializability checks to find the value types they know.
type Bootstrap struct {
	*Memory
}

func NewBootstrap() *Bootstrap {
	b := &Bootstrap{Memory: NewMemory()}
	for _, stub := range platformStubs() {
		b.PutClass(stub)
	}
	log.Debugf("bootstrap source holds %d platform classes", len(b.classes))
	return b
}

func (b *Bootstrap) String() string { return "bootstrap" }

func platformStubs() []*classfile.Builder {
	final := classfile.AccPublic | classfile.AccFinal | classfile.AccSuper
	abstract := classfile.AccPublic | classfile.AccAbstract | classfile.AccSuper
	iface := classfile.AccPublic | classfile.AccInterface | classfile.AccAbstract

	stubs := []*classfile.Builder{
		classfile.NewBuilder(object, "").
			Method(classfile.AccPublic, "<init>", "()V").
			PublicMethod("equals", "("+obj+")Z").
			PublicMethod("hashCode", "()I").
			PublicMethod("toString", "()"+str).
			Method(classfile.AccPublic|classfile.AccFinal, "getClass", "()Ljava/lang/Class;").
			Method(classfile.AccPublic|classfile.AccFinal, "notify", "()V").
			Method(classfile.AccPublic|classfile.AccFinal, "notifyAll", "()V").
			Method(classfile.AccPublic|classfile.AccFinal, "wait", "()V").
			Method(classfile.AccPublic|classfile.AccFinal, "wait", "(J)V").
			Method(classfile.AccPublic|classfile.AccFinal, "wait", "(JI)V"),

		classfile.NewBuilder("java/lang/Class", object).Access(final).
			PublicMethod("getName", "()"+str).
			PublicMethod("getSimpleName", "()"+str),

		classfile.NewBuilder("java/lang/Enum", object).Access(abstract).
			Method(classfile.AccPublic|classfile.AccFinal, "name", "()"+str).
			Method(classfile.AccPublic|classfile.AccFinal, "ordinal", "()I").
			Method(classfile.AccPublic|classfile.AccFinal, "compareTo", "(Ljava/lang/Enum;)I"),

		classfile.NewBuilder("java/lang/String", object).Access(final).
			Interface("java/io/Serializable").
			Interface("java/lang/CharSequence").
			PublicMethod("length", "()I").
			PublicMethod("isEmpty", "()Z").
			PublicMethod("charAt", "(I)C").
			PublicMethod("substring", "(II)"+str).
			PublicMethod("trim", "()"+str).
			PublicMethod("toLowerCase", "()"+str).
			PublicMethod("toUpperCase", "()"+str),

		classfile.NewBuilder("java/lang/Number", object).Access(abstract).
			Interface("java/io/Serializable").
			AbstractMethod("intValue", "()I").
			AbstractMethod("longValue", "()J").
			AbstractMethod("floatValue", "()F").
			AbstractMethod("doubleValue", "()D"),

		classfile.NewBuilder("java/util/Date", object).
			Interface("java/io/Serializable").
			Method(classfile.AccPublic, "<init>", "()V").
			Method(classfile.AccPublic, "<init>", "(J)V").
			PublicMethod("getTime", "()J").
			PublicMethod("setTime", "(J)V"),

		classfile.NewBuilder("java/io/Serializable", object).Access(iface),
		classfile.NewBuilder("java/lang/CharSequence", object).Access(iface).
			AbstractMethod("length", "()I").
			AbstractMethod("charAt", "(I)C"),

		classfile.NewBuilder("java/util/Collection", object).Access(iface).
			AbstractMethod("size", "()I").
			AbstractMethod("isEmpty", "()Z").
			AbstractMethod("contains", "("+obj+")Z").
			AbstractMethod("add", "("+obj+")Z").
			AbstractMethod("remove", "("+obj+")Z").
			AbstractMethod("clear", "()V"),
		classfile.NewBuilder("java/util/List", object).Access(iface).
			Interface("java/util/Collection").
			AbstractMethod("get", "(I)"+obj).
			AbstractMethod("set", "(I"+obj+")"+obj),
		classfile.NewBuilder("java/util/Set", object).Access(iface).
			Interface("java/util/Collection"),
		classfile.NewBuilder("java/util/Map", object).Access(iface).
			AbstractMethod("size", "()I").
			AbstractMethod("isEmpty", "()Z").
			AbstractMethod("get", "("+obj+")"+obj).
			AbstractMethod("put", "("+obj+obj+")"+obj).
			AbstractMethod("remove", "("+obj+")"+obj).
			AbstractMethod("clear", "()V"),
	}

	boxed := []struct{ name, super, prim string }{
		{"Boolean", object, "Z"},
		{"Character", object, "C"},
		{"Byte", "java/lang/Number", "B"},
		{"Short", "java/lang/Number", "S"},
		{"Integer", "java/lang/Number", "I"},
		{"Long", "java/lang/Number", "J"},
		{"Float", "java/lang/Number", "F"},
		{"Double", "java/lang/Number", "D"},
	}
	for _, b := range boxed {
		name := "java/lang/" + b.name
		stub := classfile.NewBuilder(name, b.super).Access(final).
			Interface("java/io/Serializable").
			Method(classfile.AccPublic|classfile.AccStatic, "valueOf", "("+b.prim+")L"+name+";")
		if b.super == "java/lang/Number" {
			stub.PublicMethod("intValue", "()I").
				PublicMethod("longValue", "()J").
				PublicMethod("floatValue", "()F").
				PublicMethod("doubleValue", "()D")
		}
		stubs = append(stubs, stub)
	}
	return stubs
}
