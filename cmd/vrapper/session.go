package main

import (
	"fmt"

	"github.com/dhamidi/vrapper/classsource"
	"github.com/dhamidi/vrapper/config"
	"github.com/dhamidi/vrapper/typesys"
	"github.com/dhamidi/vrapper/widget"
)

// session holds the open class sources and the type registry over them.
type session struct {
	chain *classsource.Chain
	types *typesys.Registry
	opts  *globalOptions
}

func openSession(opts *globalOptions) (*session, error) {
	paths := opts.config.ClasspathPaths()
	if len(paths) == 0 && !opts.config.Bootstrap {
		return nil, fmt.Errorf("empty classpath: use -c or set classpath in %s", config.FileName)
	}
	chain, err := classsource.Open(paths...)
	if err != nil {
		return nil, err
	}
	if opts.config.Bootstrap {
		chain.Append(classsource.NewBootstrap())
	}
	return &session{chain: chain, types: typesys.NewRegistry(chain), opts: opts}, nil
}

func (s *session) Close() error {
	return s.chain.Close()
}

// classNames lists every class in the classpath sources.
func (s *session) classNames() ([]string, error) {
	var names []string
	for _, src := range s.chain.Sources() {
		switch src := src.(type) {
		case *classsource.Dir:
			classes, err := src.Classes()
			if err != nil {
				return nil, err
			}
			names = append(names, classes...)
		case *classsource.Zip:
			names = append(names, src.Classes()...)
		case *classsource.Memory:
			names = append(names, src.Classes()...)
		}
	}
	return names, nil
}

// configuration evaluates the widget with the given class name.
func (s *session) configuration(name string) (*widget.Configuration, error) {
	var opts []widget.Option
	if s.opts.config.SkipUnresolvable {
		opts = append(opts, widget.SkipUnresolvable())
	}
	t, err := s.types.ClassType(name)
	if err != nil {
		return nil, err
	}
	return widget.NewConfiguration(t, opts...)
}
