// Package schemadb holds the durable record of schema generation: every
// class/level/distance-bucket to component ID mapping, the next-available-ID
// counter and the collision diagnostics, persisted across generation runs.
package schemadb

import (
	"github.com/lee-vincent/spatialschema/engine/common"
	"github.com/lee-vincent/spatialschema/engine/consts"
)

// ActorSubobjectData is one static subobject slot of an actor class
type ActorSubobjectData struct {
	ClassPath        common.ClassPath
	SchemaComponents common.ComponentIdSet
}

// ActorSchemaData is the committed schema assignment of one actor class
type ActorSchemaData struct {
	GeneratedSchemaName string
	SchemaComponents    common.ComponentIdSet
	// Subobjects maps declared subobject names to their assigned slots
	Subobjects map[string]*ActorSubobjectData
}

// SubobjectSchemaData is the committed schema assignment of one subobject
// class, shared by every actor using the class
type SubobjectSchemaData struct {
	GeneratedSchemaName string
	// DynamicSubobjectComponents are the per-category ID sets reserved for
	// runtime-attached instances of the class, one set per possible instance
	DynamicSubobjectComponents []common.ComponentIdSet
}

// SchemaDatabase is the aggregate root owning all persisted schema mappings
type SchemaDatabase struct {
	NextAvailableComponentId common.ComponentId

	ActorClassPathToSchema       map[common.ClassPath]*ActorSchemaData
	SubobjectClassPathToSchema   map[common.ClassPath]*SubobjectSchemaData
	LevelPathToComponentId       map[string]common.ComponentId
	NetCullDistanceToComponentId map[float64]common.ComponentId

	// CategoryToComponents tracks every issued ID per category
	CategoryToComponents map[common.SchemaComponentCategory]common.ComponentIdSet32

	// ComponentIdToClassPath is derived from the forward tables; it is
	// rebuilt on every save and never trusted from disk
	ComponentIdToClassPath map[common.ComponentId]common.ClassPath

	// PotentialSchemaNameCollisions records what sanitized to what, purely
	// for diagnostics
	PotentialSchemaNameCollisions map[string][]string

	// SchemaDescriptorHash fingerprints the last successfully compiled
	// descriptor, for downstream change detection only
	SchemaDescriptorHash uint32
}

// New creates an empty database with the counter at the reserved-range boundary
func New() *SchemaDatabase {
	db := &SchemaDatabase{
		NextAvailableComponentId:      consts.STARTING_GENERATED_COMPONENT_ID,
		ActorClassPathToSchema:        map[common.ClassPath]*ActorSchemaData{},
		SubobjectClassPathToSchema:    map[common.ClassPath]*SubobjectSchemaData{},
		LevelPathToComponentId:        map[string]common.ComponentId{},
		NetCullDistanceToComponentId:  map[float64]common.ComponentId{},
		CategoryToComponents:          map[common.SchemaComponentCategory]common.ComponentIdSet32{},
		ComponentIdToClassPath:        map[common.ComponentId]common.ClassPath{},
		PotentialSchemaNameCollisions: map[string][]string{},
	}
	for _, category := range common.AllCategories() {
		db.CategoryToComponents[category] = common.ComponentIdSet32{}
	}
	return db
}

// RegisterComponentId records an issued ID under its category
func (db *SchemaDatabase) RegisterComponentId(category common.SchemaComponentCategory, id common.ComponentId) {
	if !id.IsValid() {
		return
	}
	db.CategoryToComponents[category].Add(id)
}

// RebuildComponentIdToClassPath recomputes the reverse index from the
// authoritative forward tables so it can never drift from them
func (db *SchemaDatabase) RebuildComponentIdToClassPath() {
	reverse := map[common.ComponentId]common.ClassPath{}

	for classPath, actorData := range db.ActorClassPathToSchema {
		for _, category := range common.AllCategories() {
			reverse[actorData.SchemaComponents[category]] = classPath
		}
		for _, subData := range actorData.Subobjects {
			for _, category := range common.AllCategories() {
				reverse[subData.SchemaComponents[category]] = subData.ClassPath
			}
		}
	}

	for classPath, subData := range db.SubobjectClassPathToSchema {
		for _, idSet := range subData.DynamicSubobjectComponents {
			for _, category := range common.AllCategories() {
				reverse[idSet[category]] = classPath
			}
		}
	}

	delete(reverse, consts.INVALID_COMPONENT_ID)
	db.ComponentIdToClassPath = reverse
}

// IsEmpty returns if the database holds no committed assignments at all
func (db *SchemaDatabase) IsEmpty() bool {
	return len(db.ActorClassPathToSchema) == 0 &&
		len(db.SubobjectClassPathToSchema) == 0 &&
		len(db.LevelPathToComponentId) == 0 &&
		len(db.NetCullDistanceToComponentId) == 0
}
