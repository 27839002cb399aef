package main

import (
	"github.com/lee-vincent/spatialschema/engine/config"
	"github.com/lee-vincent/spatialschema/engine/schemadb"
)

func deleteDatabase() {
	dbFile := config.GetDatabase().File
	if !schemadb.Exists(dbFile) {
		showMsg("schema database %s does not exist", dbFile)
		return
	}

	checkErrorOrQuit(schemadb.Delete(dbFile), "delete schema database failed")
	showMsg("deleted schema database %s", dbFile)
}
