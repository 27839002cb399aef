package common

import (
	"github.com/lee-vincent/spatialschema/engine/sglog"
)

// ComponentId identifies one schema component across the whole deployment
type ComponentId uint32

// IsValid returns if the ComponentId is assigned
func (id ComponentId) IsValid() bool {
	return id != 0
}

// ClassPath is the globally unique, stable path of a class, used as the
// primary key for all persisted schema mappings
type ClassPath string

// IsNil returns if ClassPath is nil
func (cp ClassPath) IsNil() bool {
	return cp == ""
}

// SchemaComponentCategory enumerates the three facets of a class's networked
// state, each of which becomes its own schema component
type SchemaComponentCategory int

const (
	// SchemaData is the normally replicated state facet
	SchemaData SchemaComponentCategory = iota
	// SchemaOwnerOnly is the state facet replicated to the owning client only
	SchemaOwnerOnly
	// SchemaHandover is the state facet handed over between authoritative workers
	SchemaHandover

	// NumSchemaCategories is the number of schema component categories
	NumSchemaCategories
)

var categoryNames = map[SchemaComponentCategory]string{
	SchemaData:      "Data",
	SchemaOwnerOnly: "OwnerOnly",
	SchemaHandover:  "Handover",
}

func (c SchemaComponentCategory) String() string {
	name, ok := categoryNames[c]
	if !ok {
		sglog.Panicf("unknown schema component category: %d", int(c))
	}
	return name
}

// AllCategories returns all schema component categories in fixed order
func AllCategories() [NumSchemaCategories]SchemaComponentCategory {
	return [NumSchemaCategories]SchemaComponentCategory{SchemaData, SchemaOwnerOnly, SchemaHandover}
}

// ComponentIdSet holds one ComponentId per schema component category
type ComponentIdSet [NumSchemaCategories]ComponentId
