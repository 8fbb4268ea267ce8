package classsource

import (
	"fmt"
	"strings"
)

// Chain tries its sources in order; the first one that has the class wins.
type Chain struct {
	sources []Source
}

func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

// Append adds sources at the end of the lookup order.
func (c *Chain) Append(sources ...Source) {
	c.sources = append(c.sources, sources...)
}

func (c *Chain) Sources() []Source {
	return c.sources
}

func (c *Chain) Find(name string) ([]byte, bool, error) {
	for _, s := range c.sources {
		data, ok, err := s.Find(name)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return data, true, nil
		}
	}
	return nil, false, nil
}

// Close closes every source, even after a failure, and reports all failures
// as a *CloseError.
func (c *Chain) Close() error {
	var cerr *CloseError
	for _, s := range c.sources {
		err := s.Close()
		if err == nil {
			continue
		}
		log.Warningf("close %v: %v", s, err)
		if cerr == nil {
			cerr = &CloseError{First: err}
		} else {
			cerr.Others = append(cerr.Others, err)
		}
	}
	if cerr == nil {
		return nil
	}
	return cerr
}

// CloseError collects the failures of a Chain.Close. First is the earliest
// failure in source order.
type CloseError struct {
	First  error
	Others []error
}

func (e *CloseError) Error() string {
	if len(e.Others) == 0 {
		return fmt.Sprintf("close class source: %v", e.First)
	}
	msgs := make([]string, len(e.Others))
	for i, err := range e.Others {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("close class source: %v (and %d more: %s)", e.First, len(e.Others), strings.Join(msgs, "; "))
}

func (e *CloseError) Unwrap() []error {
	return append([]error{e.First}, e.Others...)
}
