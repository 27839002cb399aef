package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lee-vincent/spatialschema/engine/codewriter"
	"github.com/lee-vincent/spatialschema/engine/common"
	"github.com/lee-vincent/spatialschema/engine/consts"
	"github.com/lee-vincent/spatialschema/engine/names"
	"github.com/lee-vincent/spatialschema/engine/schemadb"
	"github.com/lee-vincent/spatialschema/engine/typeinfo"
)

const generatedFileNote = "// Note that this file has been generated automatically"

func categoryComponentName(schemaName string, category common.SchemaComponentCategory) string {
	if category == common.SchemaData {
		return schemaName
	}
	return schemaName + category.String()
}

func categoryFields(ti *typeinfo.TypeInfo, category common.SchemaComponentCategory) []*typeinfo.Property {
	switch category {
	case common.SchemaData:
		return ti.RepData(typeinfo.GroupMultiClient)
	case common.SchemaOwnerOnly:
		return ti.RepData(typeinfo.GroupSingleClient)
	case common.SchemaHandover:
		return ti.Handover
	}
	return nil
}

func writeComponent(w *codewriter.Writer, name string, id common.ComponentId, fields []*typeinfo.Property) {
	w.PrintNewLine()
	w.Printf("component %s {", name)
	w.Indent()
	w.Printf("id = %d;", id)
	for i, prop := range fields {
		w.Printf("%s %s = %d;", prop.SchemaType, names.SchemaFieldName(prop.Name), i+1)
	}
	w.Outdent().Print("}")
}

func (a *Assigner) writeActorSchema(ti *typeinfo.TypeInfo, schemaName string, actorData *schemadb.ActorSchemaData) error {
	w := codewriter.New()
	w.Print(generatedFileNote)
	w.Printf("package unreal.generated.%s;", strings.ToLower(schemaName))

	for _, category := range common.AllCategories() {
		writeComponent(w, categoryComponentName(schemaName, category), actorData.SchemaComponents[category], categoryFields(ti, category))
	}

	for _, name := range ti.SubobjectNames() {
		sub := ti.Subobjects[name]
		slot := actorData.Subobjects[name]
		subComponentName := schemaName + names.SchemaComponentName(name)
		for _, category := range common.AllCategories() {
			writeComponent(w, categoryComponentName(subComponentName, category), slot.SchemaComponents[category], categoryFields(sub, category))
		}
	}

	return w.WriteToFile(filepath.Join(a.outputDir, schemaName+consts.SCHEMA_FILE_EXT))
}

func (a *Assigner) writeSubobjectSchema(ti *typeinfo.TypeInfo, schemaName string, subData *schemadb.SubobjectSchemaData) error {
	w := codewriter.New()
	w.Print(generatedFileNote)
	w.Printf("package unreal.generated.subobjects.%s;", strings.ToLower(schemaName))

	for i, idSet := range subData.DynamicSubobjectComponents {
		dynName := fmt.Sprintf("%sDynamic%d", schemaName, i+1)
		for _, category := range common.AllCategories() {
			writeComponent(w, categoryComponentName(dynName, category), idSet[category], categoryFields(ti, category))
		}
	}

	return w.WriteToFile(filepath.Join(a.outputDir, "Subobjects", schemaName+consts.SCHEMA_FILE_EXT))
}
