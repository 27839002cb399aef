package names

import (
	"fmt"
	"strings"

	"github.com/lee-vincent/spatialschema/engine/common"
	"github.com/lee-vincent/spatialschema/engine/sglog"
	"github.com/lee-vincent/spatialschema/engine/typeinfo"
)

// ValidationError aggregates every naming violation found in one generation
// run, so a single run reports every problem instead of failing at the first
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d naming violations:\n%s", len(e.Problems), strings.Join(e.Problems, "\n"))
}

func (e *ValidationError) addf(format string, args ...interface{}) {
	problem := fmt.Sprintf(format, args...)
	sglog.Errorf("%s", problem)
	e.Problems = append(e.Problems, problem)
}

// OrNil returns the error itself, or nil when no violation was collected
func (e *ValidationError) OrNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

// CheckSchemaNameValidity checks one generated schema name for emptiness and
// leading digits, appending violations to verr
func CheckSchemaNameValidity(name string, identifier string, category string, verr *ValidationError) bool {
	if name == "" {
		verr.addf("%s %s is empty after removing non-alphanumeric characters, schema not generated", category, identifier)
		return false
	}

	if isDigit(name[0]) {
		verr.addf("%s names should not start with digits. %s %s (%s) has leading digits (potentially after removing non-alphanumeric characters), schema not generated",
			category, category, name, identifier)
		return false
	}

	return true
}

// ClassNameFromPath returns the asset name of a class path: the segment after
// the last '/' and '.'
func ClassNameFromPath(classPath common.ClassPath) string {
	name := string(classPath)
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}

// ValidateIdentifierNames resolves class schema names into the table and
// checks every generated identifier (class, replicated/handover property,
// subobject names) across the whole class set, collecting all violations.
// Intra-class duplicate field names are hard failures because property names
// are part of the wire contract.
func ValidateIdentifierNames(t *Table, typeInfos []*typeinfo.TypeInfo) error {
	verr := &ValidationError{}

	// Resolve class names first so collisions across the whole set are
	// suffixed deterministically.
	for _, ti := range typeInfos {
		schemaName := SanitizeStrict(ti.ClassName)
		CheckSchemaNameValidity(schemaName, string(ti.ClassPath), "Class", verr)
		t.ResolveClassName(ti.ClassPath, ti.ClassName)
	}

	for _, name := range t.CollidedNames() {
		sglog.Infof("Class name collision after removing non-alphanumeric characters. Name '%s' collides for classes [%s]",
			name, strings.Join(t.Collisions()[name], ", "))
	}

	for _, ti := range typeInfos {
		checkIdentifierNameValidity(ti, verr)
	}

	return verr.OrNil()
}

func checkIdentifierNameValidity(ti *typeinfo.TypeInfo, verr *ValidationError) {
	// Check replicated data.
	for _, group := range typeinfo.AllPropertyGroups() {
		seen := map[string]*typeinfo.Property{}
		for _, prop := range ti.RepData(group) {
			fieldName := SchemaFieldName(prop.Name)

			CheckSchemaNameValidity(fieldName, prop.Path, "Replicated property", verr)

			if existing, ok := seen[fieldName]; ok {
				verr.addf("Replicated property name collision after removing non-alphanumeric characters, schema not generated. Name '%s' collides for '%s' and '%s'",
					fieldName, existing.Path, prop.Path)
			} else {
				seen[fieldName] = prop
			}
		}
	}

	// Check handover data.
	seenHandover := map[string]*typeinfo.Property{}
	for _, prop := range ti.Handover {
		fieldName := SchemaFieldName(prop.Name)

		CheckSchemaNameValidity(fieldName, prop.Path, "Handover property", verr)

		if existing, ok := seenHandover[fieldName]; ok {
			verr.addf("Handover data name collision after removing non-alphanumeric characters, schema not generated. Name '%s' collides for '%s' and '%s'",
				fieldName, existing.Path, prop.Path)
		} else {
			seenHandover[fieldName] = prop
		}
	}

	// Check subobject name validity.
	seenSubobjects := map[string]*typeinfo.TypeInfo{}
	for _, name := range ti.SubobjectNames() {
		sub := ti.Subobjects[name]
		subName := SchemaComponentName(name)

		CheckSchemaNameValidity(subName, string(sub.ClassPath), "Subobject", verr)

		if existing, ok := seenSubobjects[subName]; ok {
			verr.addf("Subobject name collision after removing non-alphanumeric characters, schema not generated. Name '%s' collides for '%s' and '%s'",
				subName, existing.ClassPath, sub.ClassPath)
		} else {
			seenSubobjects[subName] = sub
		}
	}
}
