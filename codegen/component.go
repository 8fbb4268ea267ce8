package codegen

import "github.com/dhamidi/vrapper/typesys"

// ComponentGenerator builds the server-side component class.
type ComponentGenerator struct {
	*Generator
	constructor *Method
	rpc         rpcHandlers
}

// AddToConstructor appends a snippet to the no-argument constructor,
// creating it on first use.
func (c *ComponentGenerator) AddToConstructor(s Snippet) error {
	if c.constructor == nil {
		ctor, err := c.AddConstructor()
		if err != nil {
			return err
		}
		c.constructor = ctor
	}
	c.constructor.AddSnippet(s)
	return nil
}

func (c *ComponentGenerator) addRPCInit(iface *typesys.ClassType, decl *Method, handler Snippet) error {
	if c.rpc.add(iface, decl, handler) {
		return c.AddToConstructor(&c.rpc)
	}
	return nil
}
