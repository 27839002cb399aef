package editor

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bmizerany/assert"

	"github.com/lee-vincent/spatialschema/engine/config"
	"github.com/lee-vincent/spatialschema/engine/post"
	"github.com/lee-vincent/spatialschema/engine/schemadb"
	"github.com/lee-vincent/spatialschema/engine/typeinfo"
)

type fakeRunner struct {
	block chan struct{} // when set, Run waits on it
}

func (r *fakeRunner) Run(exe string, args []string) (int, string, string, error) {
	if r.block != nil {
		<-r.block
	}
	return 0, "", "", nil
}

func testEditorConfig(t *testing.T) *config.SchemagenConfig {
	dir, err := ioutil.TempDir("", "editor_test")
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

func testManifest() *typeinfo.Manifest {
	return &typeinfo.Manifest{
		Classes: []*typeinfo.TypeInfo{
			{ClassPath: "/Game/Blueprints/PlayerPawn.PlayerPawn_C", ClassName: "PlayerPawn", Kind: typeinfo.KindActor},
		},
	}
}

func TestFullScanRequired(t *testing.T) {
	cfg := testEditorConfig(t)
	ed := New(cfg, &fakeRunner{})

	assert.T(t, ed.FullScanRequired(), "fresh workspace must require a full scan")
	assert.T(t, !ed.IsSchemaGenerated(), "nothing generated yet")

	if err := ed.GenerateSchema(testManifest(), MethodFullAssetScan); err != nil {
		t.Fatal(err)
	}
	assert.T(t, !ed.FullScanRequired(), "committed database and output exist now")
}

func TestGenerateSchemaRejectsConcurrentRuns(t *testing.T) {
	cfg := testEditorConfig(t)
	runner := &fakeRunner{block: make(chan struct{})}
	ed := New(cfg, runner)

	var callbackErr error
	callbackDone := make(chan struct{})
	ok := ed.GenerateSchemaAsync(testManifest(), MethodInMemoryAsset, func(res interface{}, err error) {
		callbackErr = err
		close(callbackDone)
	})
	assert.T(t, ok, "first run must be accepted")

	// wait for the worker to pick the job up
	for i := 0; i < 100 && !ed.IsSchemaGeneratorRunning(); i++ {
		time.Sleep(10 * time.Millisecond)
	}
	assert.T(t, ed.IsSchemaGeneratorRunning(), "run must be in flight")

	assert.Equal(t, ErrAlreadyRunning, ed.GenerateSchema(testManifest(), MethodInMemoryAsset))
	assert.T(t, !ed.GenerateSchemaAsync(testManifest(), MethodInMemoryAsset, nil), "second async run must be rejected")

	close(runner.block)
	deadline := time.After(5 * time.Second)
	for {
		post.Tick()
		select {
		case <-callbackDone:
			assert.Equal(t, nil, callbackErr)
			return
		case <-deadline:
			t.Fatal("callback never posted")
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func TestFullAssetScanDiscardsCommittedState(t *testing.T) {
	cfg := testEditorConfig(t)
	ed := New(cfg, &fakeRunner{})

	if err := ed.GenerateSchema(testManifest(), MethodInMemoryAsset); err != nil {
		t.Fatal(err)
	}

	other := &typeinfo.Manifest{
		Classes: []*typeinfo.TypeInfo{
			{ClassPath: "/Game/Blueprints/Monster.Monster_C", ClassName: "Monster", Kind: typeinfo.KindActor},
		},
	}
	if err := ed.GenerateSchema(other, MethodFullAssetScan); err != nil {
		t.Fatal(err)
	}

	db, err := schemadb.Load(cfg.Database.File)
	if err != nil {
		t.Fatal(err)
	}
	assert.T(t, db.ActorClassPathToSchema["/Game/Blueprints/PlayerPawn.PlayerPawn_C"] == nil,
		"full scan must not keep classes from the discarded database")
	assert.T(t, db.ActorClassPathToSchema["/Game/Blueprints/Monster.Monster_C"] != nil, "rescanned class missing")
}
