package ports

import (
	"context"
)

// BundleMetadata holds the scalar facts stored next to a bundle document.
type BundleMetadata struct {
	InterfaceID   string
	InterfaceName string
	Package       string
	InterfaceType string
	BeanClass     string
	HasBean       bool
	DTOCount      int
	EntityCount   int
	MethodCount   int
}

// Bundle is one retrieval document keyed by interface name.
type Bundle struct {
	Document string
	Metadata BundleMetadata
	// Methods backs QueryByMethod; it is not part of the returned metadata.
	Methods []string
}

// QueryResult is a stored bundle with its distance from the query.
// Distance 0 is an exact match; larger is worse.
type QueryResult struct {
	Document string
	Metadata BundleMetadata
	Distance float64
}

// ContextStore persists bundles and answers approximate lookups.
type ContextStore interface {
	AddBundles(ctx context.Context, bundles []Bundle) error
	QueryByInterfaceName(ctx context.Context, name string, limit int) ([]QueryResult, error)
	GetByInterfaceName(ctx context.Context, name string) (QueryResult, bool, error)
	QueryByMethod(ctx context.Context, method string, limit int) ([]QueryResult, error)
	InterfaceNames(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
	Close() error
}

// DocumentGenerator turns a bundle document into markdown documentation.
type DocumentGenerator func(ctx context.Context, contextDocument, interfaceName string) (string, error)
