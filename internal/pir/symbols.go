package pir

import (
	"cmp"
	"slices"
)

// SymbolTable is a deduplicated set of symbol triples.
type SymbolTable struct {
	seen map[Symbol]struct{}
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{seen: make(map[Symbol]struct{})}
}

// Add records a symbol. Identical triples collapse to one entry.
func (t *SymbolTable) Add(name, unitID string, role Role) {
	if name == "" {
		return
	}
	t.seen[Symbol{Name: name, UnitID: unitID, Role: role}] = struct{}{}
}

// Len returns the number of distinct symbols.
func (t *SymbolTable) Len() int {
	return len(t.seen)
}

// Sorted returns the symbols ordered by name, then unit id, then role.
func (t *SymbolTable) Sorted() []Symbol {
	out := make([]Symbol, 0, len(t.seen))
	for s := range t.seen {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b Symbol) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		if c := cmp.Compare(a.UnitID, b.UnitID); c != 0 {
			return c
		}
		return cmp.Compare(a.Role, b.Role)
	})
	return out
}
