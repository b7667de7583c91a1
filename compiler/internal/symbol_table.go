package internal

import (
	"github.com/pkg/errors"
)

// SymbolTable maps names to declarations. A table can be chained to a parent table, lookups walk the chain
// while insertions only ever touch the table itself.
// It is used for the global class table, the per class method and field tables and the lexical scopes.
type SymbolTable struct {
	parent  *SymbolTable
	entries map[string]interface{}
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: map[string]interface{}{}}
}

// Put fails when name is already declared in this table, declarations of the parents don't matter.
func (table *SymbolTable) Put(name string, entry interface{}) error {
	if _, ok := table.entries[name]; ok {
		return errors.Errorf("Symbol '%s' already defined in this scope.", name)
	}
	table.entries[name] = entry
	return nil
}

// Get returns nil if name cannot be found in this table and all its parents.
func (table *SymbolTable) Get(name string) interface{} {
	for t := table; t != nil; t = t.parent {
		if entry, ok := t.entries[name]; ok {
			return entry
		}
	}
	return nil
}

// GetLocal only looks at this table.
func (table *SymbolTable) GetLocal(name string) interface{} {
	return table.entries[name]
}

func (table *SymbolTable) NewScope() *SymbolTable {
	scope := NewSymbolTable()
	scope.parent = table
	return scope
}

// CloseScope returns the parent scope.
func (table *SymbolTable) CloseScope() *SymbolTable {
	return table.parent
}
