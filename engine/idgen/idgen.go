// Package idgen hands out component IDs from a persisted high-water mark.
package idgen

import (
	"github.com/lee-vincent/spatialschema/engine/common"
	"github.com/lee-vincent/spatialschema/engine/consts"
	"github.com/lee-vincent/spatialschema/engine/sglog"
)

// Generator mints monotonically increasing component IDs. Exactly one
// generator instance mutates the counter within a generation run; it is not
// safe for concurrent use.
type Generator struct {
	nextID common.ComponentId
}

// NewGenerator creates a generator starting at the given counter value,
// normally the database's persisted NextAvailableComponentId
func NewGenerator(startID common.ComponentId) *Generator {
	if startID < consts.STARTING_GENERATED_COMPONENT_ID {
		sglog.Panicf("idgen: start ID %d is inside the reserved range below %d",
			startID, consts.STARTING_GENERATED_COMPONENT_ID)
	}
	return &Generator{nextID: startID}
}

// Next returns the current counter value and increments it
func (gen *Generator) Next() common.ComponentId {
	id := gen.nextID
	gen.nextID++
	if gen.nextID == 0 {
		// ID space exhausted; large enough that this never happens in practice
		sglog.Fatalf("idgen: component ID space exhausted")
	}
	return id
}

// Peek returns the current counter value without minting
func (gen *Generator) Peek() common.ComponentId {
	return gen.nextID
}
