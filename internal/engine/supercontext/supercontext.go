// Package supercontext assembles, per EJB interface, the bundle of its source,
// its implementation bean and the DTO and entity sources it touches.
package supercontext

import (
	"ejbctx/internal/engine/ejb"
)

// DefaultMaxSourceBytes caps each source section of a bundle.
const DefaultMaxSourceBytes = 256 * 1024

// Source is one named source file included in a bundle.
type Source struct {
	Name string
	Code string
}

type Metadata struct {
	InterfaceName string
	Package       string
	Category      ejb.Category
	BeanClass     string
	HasBean       bool
	DTOCount      int
	EntityCount   int
	MethodCount   int
	Methods       []string
}

// SuperContext is built once per interface per run and never mutated afterwards.
type SuperContext struct {
	InterfaceName string
	InterfaceCode string
	BeanCode      string
	DTOs          []Source
	Entities      []Source
	// Dropped lists related names that had no readable source.
	Dropped  []string
	Metadata Metadata
}

func (sc *SuperContext) HasBean() bool {
	return sc.Metadata.HasBean
}
