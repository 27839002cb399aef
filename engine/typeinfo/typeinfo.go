package typeinfo

import (
	"sort"

	"github.com/lee-vincent/spatialschema/engine/common"
)

// ClassKind classifies a class descriptor once so the generator can dispatch
// on the tag instead of on type hierarchy
type ClassKind int

const (
	// KindActor is an actor-derived class
	KindActor ClassKind = iota
	// KindSubobject is a non-actor class reachable as a subobject
	KindSubobject
)

func (k ClassKind) String() string {
	if k == KindActor {
		return "Actor"
	}
	return "Subobject"
}

// PropertyGroup is the replication condition group of a replicated property
type PropertyGroup int

const (
	// GroupMultiClient replicates to all interested clients
	GroupMultiClient PropertyGroup = iota
	// GroupSingleClient replicates to the owning client only
	GroupSingleClient

	// NumPropertyGroups is the number of replication condition groups
	NumPropertyGroups
)

func (g PropertyGroup) String() string {
	if g == GroupMultiClient {
		return "MultiClient"
	}
	return "SingleClient"
}

// Category maps the replication group to its schema component category
func (g PropertyGroup) Category() common.SchemaComponentCategory {
	if g == GroupSingleClient {
		return common.SchemaOwnerOnly
	}
	return common.SchemaData
}

// AllPropertyGroups returns all replication groups in fixed order
func AllPropertyGroups() [NumPropertyGroups]PropertyGroup {
	return [NumPropertyGroups]PropertyGroup{GroupMultiClient, GroupSingleClient}
}

// Property describes one replicated or handover property of a class
type Property struct {
	Name       string `json:"name"`       // declared property name
	Path       string `json:"path"`       // full property path, for diagnostics
	SchemaType string `json:"schemaType"` // schema field type, e.g. "int32"
}

// TypeInfo is the immutable description of one class's networked state,
// supplied by the host reflection layer. The generator never mutates it.
type TypeInfo struct {
	ClassPath  common.ClassPath              `json:"classPath"`
	ClassName  string                        `json:"className"`
	Kind       ClassKind                     `json:"kind"`
	Replicated map[PropertyGroup][]*Property `json:"replicated"`
	Handover   []*Property                   `json:"handover"`
	// Subobjects maps declared subobject names to their class descriptors
	Subobjects map[string]*TypeInfo `json:"subobjects"`
	// DynamicSubobjectClasses lists classes this actor may attach at runtime
	DynamicSubobjectClasses []common.ClassPath `json:"dynamicSubobjectClasses"`
	// NetCullDistanceSquared is the relevance distance of actor classes, 0 if unset
	NetCullDistanceSquared float64 `json:"netCullDistanceSquared"`
}

// IsActor returns if the class is actor-derived
func (ti *TypeInfo) IsActor() bool {
	return ti.Kind == KindActor
}

// RepData returns the replicated properties of one group, never nil
func (ti *TypeInfo) RepData(group PropertyGroup) []*Property {
	return ti.Replicated[group]
}

// SubobjectNames returns the declared subobject names in lexicographic order
func (ti *TypeInfo) SubobjectNames() []string {
	names := make([]string, 0, len(ti.Subobjects))
	for name := range ti.Subobjects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Visit walks the descriptor and every transitively reachable subobject
// descriptor in lexicographic subobject-name order. The visit function
// returns false to stop the walk.
func (ti *TypeInfo) Visit(visit func(node *TypeInfo) bool) bool {
	if !visit(ti) {
		return false
	}
	for _, name := range ti.SubobjectNames() {
		if !ti.Subobjects[name].Visit(visit) {
			return false
		}
	}
	return true
}
