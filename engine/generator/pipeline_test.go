package generator

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmizerany/assert"

	"github.com/lee-vincent/spatialschema/engine/common"
	"github.com/lee-vincent/spatialschema/engine/config"
	"github.com/lee-vincent/spatialschema/engine/schemadb"
	"github.com/lee-vincent/spatialschema/engine/typeinfo"
)

type fakeRunner struct {
	exitCode int
	stderr   string
	calls    int
}

func (r *fakeRunner) Run(exe string, args []string) (int, string, string, error) {
	r.calls++
	return r.exitCode, "", r.stderr, nil
}

func testPipelineConfig(t *testing.T) *config.SchemagenConfig {
	dir, err := ioutil.TempDir("", "pipeline_test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := &config.SchemagenConfig{}
	cfg.Schema.OutputDir = filepath.Join(dir, "schema/unreal/generated")
	cfg.Schema.MaxDynamicSubobjects = 3
	cfg.Database.File = filepath.Join(dir, "SchemaDatabase.sdb")
	cfg.Compiler.Path = filepath.Join(dir, "schema_compiler")
	cfg.Compiler.CompiledDir = filepath.Join(dir, "build/assembly/schema")
	return cfg
}

func TestRunPersistsDatabase(t *testing.T) {
	cfg := testPipelineConfig(t)
	runner := &fakeRunner{}
	manifest := &typeinfo.Manifest{
		Classes:           []*typeinfo.TypeInfo{playerPawn(), monster()},
		LevelNamesToPaths: map[string][]string{"Hub": {"/Game/Maps/Hub"}},
	}

	if err := Run(manifest, cfg, runner); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, runner.calls)

	db, err := schemadb.Load(cfg.Database.File)
	if err != nil {
		t.Fatal(err)
	}
	assert.T(t, db.ActorClassPathToSchema["/Game/Blueprints/PlayerPawn.PlayerPawn_C"] != nil, "actor missing from saved database")
	assert.T(t, db.LevelPathToComponentId["/Game/Maps/Hub"].IsValid(), "level missing from saved database")
}

func TestRunIsIncrementalAcrossInvocations(t *testing.T) {
	cfg := testPipelineConfig(t)
	manifest := &typeinfo.Manifest{Classes: []*typeinfo.TypeInfo{playerPawn()}}

	if err := Run(manifest, cfg, &fakeRunner{}); err != nil {
		t.Fatal(err)
	}
	db1, err := schemadb.Load(cfg.Database.File)
	if err != nil {
		t.Fatal(err)
	}

	manifest.Classes = append(manifest.Classes, monster())
	if err := Run(manifest, cfg, &fakeRunner{}); err != nil {
		t.Fatal(err)
	}
	db2, err := schemadb.Load(cfg.Database.File)
	if err != nil {
		t.Fatal(err)
	}

	path := common.ClassPath("/Game/Blueprints/PlayerPawn.PlayerPawn_C")
	assert.Equal(t, db1.ActorClassPathToSchema[path].SchemaComponents, db2.ActorClassPathToSchema[path].SchemaComponents)
}

func TestRunDoesNotSaveOnCompilerFailure(t *testing.T) {
	cfg := testPipelineConfig(t)
	manifest := &typeinfo.Manifest{Classes: []*typeinfo.TypeInfo{playerPawn()}}
	runner := &fakeRunner{exitCode: 1, stderr: "schema parse error"}

	err := Run(manifest, cfg, runner)
	if err == nil {
		t.Fatal("expected compiler failure to fail the run")
	}

	if _, statErr := os.Stat(cfg.Database.File); !os.IsNotExist(statErr) {
		t.Fatal("database must not be written after a failed compile")
	}
}

func TestPrepareDatabaseFallsBackWhenMissing(t *testing.T) {
	dir, err := ioutil.TempDir("", "pipeline_test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	db, err := PrepareDatabase(filepath.Join(dir, "nope.sdb"))
	if err != nil {
		t.Fatal(err)
	}
	assert.T(t, db.IsEmpty(), "fresh database expected")
}
