package symbols

import (
	"ejbctx/internal/shared/util"
	"sort"
	"strings"
)

// Collision records a type name declared in more than one file.
// Kept is the path the table resolves to; Shadowed lost.
type Collision struct {
	Name     string
	Kept     string
	Shadowed string
}

// Table maps simple and package-qualified type names to the declaring file.
type Table struct {
	entries    map[string]string
	simple     map[string]bool
	collisions []Collision
}

func NewTable() *Table {
	return &Table{
		entries: make(map[string]string),
		simple:  make(map[string]bool),
	}
}

// Add registers name under pkg for path. The last registration wins.
func (t *Table) Add(pkg, name, path string) {
	t.put(name, path)
	t.simple[name] = true
	if pkg != "" {
		t.put(pkg+"."+name, path)
	}
}

func (t *Table) put(name, path string) {
	if prev, ok := t.entries[name]; ok && prev != path {
		t.collisions = append(t.collisions, Collision{Name: name, Kept: path, Shadowed: prev})
	}
	t.entries[name] = path
}

func (t *Table) Lookup(name string) (string, bool) {
	path, ok := t.entries[name]
	return path, ok
}

func (t *Table) Has(name string) bool {
	_, ok := t.entries[name]
	return ok
}

func (t *Table) Len() int {
	return len(t.entries)
}

// Names returns every entry name, simple and qualified, sorted.
func (t *Table) Names() []string {
	return util.SortedStringKeys(t.entries)
}

// SimpleNames returns the simple-name entries ordered by (file path, name).
func (t *Table) SimpleNames() []string {
	names := make([]string, 0, len(t.simple))
	for name := range t.simple {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := t.entries[names[i]], t.entries[names[j]]
		if pi != pj {
			return pi < pj
		}
		return names[i] < names[j]
	})
	return names
}

// IsQualified reports whether name is a package-qualified entry.
func IsQualified(name string) bool {
	return strings.Contains(name, ".")
}

// Files returns the distinct files reachable from simple-name entries, sorted.
func (t *Table) Files() []string {
	seen := make(map[string]bool)
	for name := range t.simple {
		seen[t.entries[name]] = true
	}
	return util.SortedStringKeys(seen)
}

func (t *Table) Collisions() []Collision {
	return append([]Collision(nil), t.collisions...)
}

// Snapshot copies the table into a plain map.
func (t *Table) Snapshot() map[string]string {
	out := make(map[string]string, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}
