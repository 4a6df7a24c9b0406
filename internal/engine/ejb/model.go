package ejb

import (
	"ejbctx/internal/engine/javasrc"
)

// Category is the EJB contract kind of an interface.
type Category string

const (
	CategoryRemote   Category = "Remote"
	CategoryLocal    Category = "Local"
	CategoryBusiness Category = "Business"
	CategoryUnknown  Category = "Unknown"
)

// InterfaceRecord describes one interface recognised as an EJB contract.
// BeanClass is empty when no implementation was linked.
type InterfaceRecord struct {
	ID              string
	InterfaceName   string
	FilePath        string
	Package         string
	Annotations     []string
	Category        Category
	Methods         []javasrc.MethodSignature
	BeanClass       string
	RelatedDTOs     []string
	RelatedEntities []string
}

// HasBean reports whether the linker found an implementation.
func (r *InterfaceRecord) HasBean() bool {
	return r.BeanClass != ""
}

// MethodNames returns method names in declaration order.
func (r *InterfaceRecord) MethodNames() []string {
	names := make([]string, 0, len(r.Methods))
	for _, m := range r.Methods {
		names = append(names, m.Name)
	}
	return names
}

func qualifiedID(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
