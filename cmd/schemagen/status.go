package main

import (
	"sort"
	"strings"

	"github.com/lee-vincent/spatialschema/engine/config"
	"github.com/lee-vincent/spatialschema/engine/schemadb"
)

func status() {
	dbFile := config.GetDatabase().File
	if !schemadb.Exists(dbFile) {
		showMsg("schema database %s does not exist, full scan required", dbFile)
		return
	}

	db, err := schemadb.Load(dbFile)
	checkErrorOrQuit(err, "load schema database failed")

	showMsg("schema database %s", dbFile)
	showMsg("next available component ID: %d", db.NextAvailableComponentId)
	showMsg("%d actor classes, %d subobject classes, %d sublevels, %d net cull distance buckets",
		len(db.ActorClassPathToSchema), len(db.SubobjectClassPathToSchema),
		len(db.LevelPathToComponentId), len(db.NetCullDistanceToComponentId))
	showMsg("schema descriptor hash: %d", db.SchemaDescriptorHash)

	if len(db.PotentialSchemaNameCollisions) > 0 {
		names := make([]string, 0, len(db.PotentialSchemaNameCollisions))
		for name := range db.PotentialSchemaNameCollisions {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			showMsg("name collision '%s': %s", name, strings.Join(db.PotentialSchemaNameCollisions[name], ", "))
		}
	}
}
