// Package names converts arbitrary class/property identifiers into valid
// schema identifiers and disambiguates the collisions the lossy conversion
// produces.
package names

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lee-vincent/spatialschema/engine/common"
)

// Sanitize strips all characters outside [A-Za-z0-9_]
func Sanitize(raw string) string {
	var sb strings.Builder
	for _, c := range raw {
		if isAlnum(c) || c == '_' {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// SanitizeStrict strips all characters outside [A-Za-z0-9], underscores
// included. Used for class names.
func SanitizeStrict(raw string) string {
	var sb strings.Builder
	for _, c := range raw {
		if isAlnum(c) {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// SchemaFieldName derives the schema field name of a property
func SchemaFieldName(propName string) string {
	return strings.ToLower(Sanitize(propName))
}

// SchemaComponentName derives a schema component name from a raw identifier,
// upper-casing the leading character
func SchemaComponentName(raw string) string {
	name := Sanitize(raw)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func isAlnum(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Table holds the per-run SchemaName disambiguation state. It is seeded by
// replaying committed assignments from the loaded database so previously
// generated names stay reserved and are never reassigned to a different class.
type Table struct {
	classPathToSchemaName map[common.ClassPath]string
	schemaNameToClassPath map[string]common.ClassPath
	potentialCollisions   map[string]common.StringSet
}

// NewTable creates an empty name table
func NewTable() *Table {
	return &Table{
		classPathToSchemaName: map[common.ClassPath]string{},
		schemaNameToClassPath: map[string]common.ClassPath{},
		potentialCollisions:   map[string]common.StringSet{},
	}
}

// SchemaName returns the resolved schema name of a class path
func (t *Table) SchemaName(classPath common.ClassPath) (string, bool) {
	name, ok := t.classPathToSchemaName[classPath]
	return name, ok
}

// ResolveClassName resolves the schema name of a class, appending an
// incrementing numeric suffix while the desired name is taken by a different
// class. Every resolution is recorded into the collision table, self
// collisions included, so a later diagnostic pass can show what sanitized to
// what.
func (t *Table) ResolveClassName(classPath common.ClassPath, className string) string {
	if name, ok := t.classPathToSchemaName[classPath]; ok {
		return name
	}

	desiredName := SanitizeStrict(className)
	schemaName := desiredName
	suffix := 0
	for {
		if _, taken := t.schemaNameToClassPath[schemaName]; !taken {
			break
		}
		suffix++
		schemaName = SanitizeStrict(className) + strconv.Itoa(suffix)
	}

	t.classPathToSchemaName[classPath] = schemaName
	t.schemaNameToClassPath[schemaName] = classPath

	if desiredName != schemaName {
		t.addPotentialCollision(desiredName, classPath, schemaName)
	}
	t.addPotentialCollision(schemaName, classPath, schemaName)
	return schemaName
}

// ResolveCommitted replays one committed ClassPath to SchemaName assignment
// from a previous run
func (t *Table) ResolveCommitted(classPath common.ClassPath, schemaName string, desiredName string) {
	if schemaName == "" {
		return
	}

	t.classPathToSchemaName[classPath] = schemaName
	t.schemaNameToClassPath[schemaName] = classPath

	if desiredName != schemaName {
		t.addPotentialCollision(desiredName, classPath, schemaName)
	}
	t.addPotentialCollision(schemaName, classPath, schemaName)
}

func (t *Table) addPotentialCollision(desiredName string, classPath common.ClassPath, generatedName string) {
	set := t.potentialCollisions[desiredName]
	if set == nil {
		set = common.StringSet{}
		t.potentialCollisions[desiredName] = set
	}
	set.Add(fmt.Sprintf("%s(%s)", classPath, generatedName))
}

// Collisions returns the collision table: desired name to the sorted
// descriptors of every class that produced it
func (t *Table) Collisions() map[string][]string {
	res := make(map[string][]string, len(t.potentialCollisions))
	for name, set := range t.potentialCollisions {
		res[name] = set.SortedList()
	}
	return res
}

// CollidedNames returns the desired names that more than one class produced,
// sorted
func (t *Table) CollidedNames() []string {
	var collided []string
	for name, set := range t.potentialCollisions {
		if len(set) > 1 {
			collided = append(collided, name)
		}
	}
	sort.Strings(collided)
	return collided
}
