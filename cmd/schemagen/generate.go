package main

import (
	"github.com/lee-vincent/spatialschema/engine/binutil"
	"github.com/lee-vincent/spatialschema/engine/compiler"
	"github.com/lee-vincent/spatialschema/engine/config"
	"github.com/lee-vincent/spatialschema/engine/editor"
	"github.com/lee-vincent/spatialschema/engine/typeinfo"
)

func generate(manifestFile string, method string) {
	cfg := config.Get()
	binutil.SetupSGLog("schemagen", cfg.Schema.LogLevel, cfg.Schema.LogFile, cfg.Schema.LogStderr)

	var genMethod editor.SchemaGenerationMethod
	if method == "incremental" {
		genMethod = editor.MethodInMemoryAsset
	} else if method == "full" {
		genMethod = editor.MethodFullAssetScan
	} else {
		showMsgAndQuit("unknown generation method: %s", method)
	}

	manifest, err := typeinfo.LoadManifest(manifestFile)
	checkErrorOrQuit(err, "load class manifest failed")
	showMsg("loaded %d classes and %d level names from %s", len(manifest.Classes), len(manifest.LevelNamesToPaths), manifestFile)

	ed := editor.New(cfg, compiler.ExecRunner{})
	checkErrorOrQuit(ed.GenerateSchema(manifest, genMethod), "schema generation failed")
	showMsg("schema generation successful")
}
