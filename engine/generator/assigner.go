// Package generator is the orchestrating core of schema generation: it walks
// class descriptors, assigns or reuses component IDs per class and category,
// and renders the assigned structures into schema source files.
package generator

import (
	"strings"

	"github.com/lee-vincent/spatialschema/engine/common"
	"github.com/lee-vincent/spatialschema/engine/config"
	"github.com/lee-vincent/spatialschema/engine/consts"
	"github.com/lee-vincent/spatialschema/engine/idgen"
	"github.com/lee-vincent/spatialschema/engine/names"
	"github.com/lee-vincent/spatialschema/engine/schemadb"
	"github.com/lee-vincent/spatialschema/engine/sglog"
	"github.com/lee-vincent/spatialschema/engine/typeinfo"
)

// Assigner owns all mutable state of one generation run. It is single
// threaded; runs are mutually exclusive at the orchestration boundary, and
// the fixed traversal order is itself a correctness requirement.
type Assigner struct {
	db         *schemadb.SchemaDatabase
	names      *names.Table
	visited    common.ClassPathSet
	classIndex map[common.ClassPath]*typeinfo.TypeInfo
	maxDynamic int
	outputDir  string
}

// NewAssigner creates an assigner over the loaded database. The per-run name
// table starts empty and is seeded by replaying committed assignments, so
// previously generated names stay reserved for their classes.
func NewAssigner(db *schemadb.SchemaDatabase, schemaCfg *config.SchemaConfig) *Assigner {
	a := &Assigner{
		db:         db,
		names:      names.NewTable(),
		visited:    common.ClassPathSet{},
		classIndex: map[common.ClassPath]*typeinfo.TypeInfo{},
		maxDynamic: schemaCfg.MaxDynamicSubobjects,
		outputDir:  schemaCfg.OutputDir,
	}
	a.seedCommittedNames()
	return a
}

func (a *Assigner) seedCommittedNames() {
	for classPath, actorData := range a.db.ActorClassPathToSchema {
		a.resolveCommitted(classPath, actorData.GeneratedSchemaName)
	}
	for classPath, subData := range a.db.SubobjectClassPathToSchema {
		a.resolveCommitted(classPath, subData.GeneratedSchemaName)
	}
}

// resolveCommitted replays one committed assignment into the per-run name
// table. The desired name is derived the same way live resolution derives it
// from the class name: the asset name without the blueprint class suffix.
func (a *Assigner) resolveCommitted(classPath common.ClassPath, schemaName string) {
	className := strings.TrimSuffix(names.ClassNameFromPath(classPath), "_C")
	a.names.ResolveCommitted(classPath, schemaName, names.SanitizeStrict(className))
}

// CollectTypeInfos dedupes the incoming descriptors against classes already
// processed this run and discovers transitively referenced subobject classes
// through an explicit worklist, returning the batch in lexicographic
// ClassPath order.
func (a *Assigner) CollectTypeInfos(classes []*typeinfo.TypeInfo) []*typeinfo.TypeInfo {
	batch := common.ClassPathSet{}

	var worklist []*typeinfo.TypeInfo
	for _, ti := range classes {
		a.classIndex[ti.ClassPath] = ti
		worklist = append(worklist, ti)
	}

	for len(worklist) > 0 {
		ti := worklist[0]
		worklist = worklist[1:]

		if a.visited.Contains(ti.ClassPath) || batch.Contains(ti.ClassPath) {
			continue
		}
		batch.Add(ti.ClassPath)
		a.classIndex[ti.ClassPath] = ti

		ti.Visit(func(node *typeinfo.TypeInfo) bool {
			if node != ti {
				worklist = append(worklist, node)
			}
			return true
		})
		for _, dynPath := range ti.DynamicSubobjectClasses {
			if dynTi, ok := a.classIndex[dynPath]; ok {
				worklist = append(worklist, dynTi)
			} else {
				sglog.Warnf("dynamic subobject class %s of %s has no descriptor, skipped", dynPath, ti.ClassPath)
			}
		}
	}

	var res []*typeinfo.TypeInfo
	for _, classPath := range batch.SortedList() {
		res = append(res, a.classIndex[classPath])
	}
	return res
}

// GenerateSchemaForClasses assigns component IDs and writes schema files for
// one batch of class descriptors. All identifier names across the batch are
// validated first and every violation is reported; on any violation the
// whole batch is aborted before a single file is written.
func (a *Assigner) GenerateSchemaForClasses(classes []*typeinfo.TypeInfo) error {
	batch := a.CollectTypeInfos(classes)
	if len(batch) == 0 {
		return nil
	}

	if err := names.ValidateIdentifierNames(a.names, batch); err != nil {
		return err
	}

	gen := idgen.NewGenerator(a.db.NextAvailableComponentId)

	for _, ti := range batch {
		a.visited.Add(ti.ClassPath)
		if consts.DEBUG_SCHEMA_GEN {
			sglog.Debugf("generating %s schema for %s", ti.Kind, ti.ClassPath)
		}

		var err error
		if ti.IsActor() {
			err = a.generateActorSchema(gen, ti)
		} else {
			err = a.generateSubobjectSchema(gen, ti)
		}
		if err != nil {
			return err
		}
	}

	a.db.NextAvailableComponentId = gen.Peek()
	return nil
}

func (a *Assigner) generateActorSchema(gen *idgen.Generator, ti *typeinfo.TypeInfo) error {
	schemaName, ok := a.names.SchemaName(ti.ClassPath)
	if !ok {
		sglog.Panicf("actor class %s has no resolved schema name", ti.ClassPath)
	}

	actorData := a.db.ActorClassPathToSchema[ti.ClassPath]
	if actorData == nil {
		actorData = &schemadb.ActorSchemaData{
			Subobjects: map[string]*schemadb.ActorSubobjectData{},
		}
		a.db.ActorClassPathToSchema[ti.ClassPath] = actorData
	}
	actorData.GeneratedSchemaName = schemaName

	for _, category := range common.AllCategories() {
		if !actorData.SchemaComponents[category].IsValid() {
			actorData.SchemaComponents[category] = gen.Next()
		}
		a.db.RegisterComponentId(category, actorData.SchemaComponents[category])
	}

	// Static subobject slots are keyed by declared name on the owning actor.
	for _, name := range ti.SubobjectNames() {
		sub := ti.Subobjects[name]
		slot := actorData.Subobjects[name]
		if slot == nil {
			slot = &schemadb.ActorSubobjectData{}
			actorData.Subobjects[name] = slot
		}
		slot.ClassPath = sub.ClassPath
		for _, category := range common.AllCategories() {
			if !slot.SchemaComponents[category].IsValid() {
				slot.SchemaComponents[category] = gen.Next()
			}
			a.db.RegisterComponentId(category, slot.SchemaComponents[category])
		}
	}

	// Reserve a net-cull-distance bucket for the actor's relevance distance;
	// IDs for new buckets are minted in GenerateSchemaForNetCullDistances.
	if ti.NetCullDistanceSquared > 0 {
		if _, ok := a.db.NetCullDistanceToComponentId[ti.NetCullDistanceSquared]; !ok {
			a.db.NetCullDistanceToComponentId[ti.NetCullDistanceSquared] = consts.INVALID_COMPONENT_ID
		}
	}

	return a.writeActorSchema(ti, schemaName, actorData)
}

func (a *Assigner) generateSubobjectSchema(gen *idgen.Generator, ti *typeinfo.TypeInfo) error {
	schemaName, ok := a.names.SchemaName(ti.ClassPath)
	if !ok {
		sglog.Panicf("subobject class %s has no resolved schema name", ti.ClassPath)
	}

	subData := a.db.SubobjectClassPathToSchema[ti.ClassPath]
	if subData == nil {
		subData = &schemadb.SubobjectSchemaData{}
		a.db.SubobjectClassPathToSchema[ti.ClassPath] = subData
	}
	subData.GeneratedSchemaName = schemaName

	// One per-category ID set per dynamically attachable instance; sets
	// minted by earlier runs are kept even if the configured count shrinks.
	for len(subData.DynamicSubobjectComponents) < a.maxDynamic {
		subData.DynamicSubobjectComponents = append(subData.DynamicSubobjectComponents, common.ComponentIdSet{})
	}
	for i := range subData.DynamicSubobjectComponents {
		for _, category := range common.AllCategories() {
			if !subData.DynamicSubobjectComponents[i][category].IsValid() {
				subData.DynamicSubobjectComponents[i][category] = gen.Next()
			}
			a.db.RegisterComponentId(category, subData.DynamicSubobjectComponents[i][category])
		}
	}

	return a.writeSubobjectSchema(ti, schemaName, subData)
}

// Collisions exposes the per-run collision table for persisting
func (a *Assigner) Collisions() map[string][]string {
	return a.names.Collisions()
}
