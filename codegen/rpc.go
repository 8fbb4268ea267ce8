package codegen

import "github.com/dhamidi/vrapper/typesys"

type rpcInit struct {
	decl    *Method
	handler Snippet
}

// rpcHandlers collects the handlers registered for each RPC interface of a
// class. They are all written into one registerRpc call per interface.
type rpcHandlers struct {
	order []*typesys.ClassType
	inits map[*typesys.ClassType][]rpcInit
}

// add records a handler and reports whether it is the first one.
func (h *rpcHandlers) add(iface *typesys.ClassType, decl *Method, handler Snippet) bool {
	first := len(h.order) == 0
	if h.inits == nil {
		h.inits = make(map[*typesys.ClassType][]rpcInit)
	}
	if _, ok := h.inits[iface]; !ok {
		h.order = append(h.order, iface)
	}
	h.inits[iface] = append(h.inits[iface], rpcInit{decl: decl, handler: handler})
	return first
}

func (h *rpcHandlers) WriteSnippet(w *Writer) {
	for _, iface := range h.order {
		w.Println("registerRpc(%s.class, new %s() {", iface, iface)
		w.Indent()
		for _, init := range h.inits[iface] {
			if !w.Preview() {
				w.Println("@Override")
			}
			w.Print("public %s %s(", init.decl.ReturnType(), init.decl.Name())
			for i, t := range init.decl.ParameterTypes() {
				if i > 0 {
					w.Print(", ")
				}
				w.Print("%s %s", t, init.decl.ParameterNames()[i])
			}
			w.Println(") {")
			w.Indent()
			init.handler.WriteSnippet(w)
			w.Outdent()
			w.Println("}")
		}
		w.Outdent()
		w.Println("});")
	}
}
