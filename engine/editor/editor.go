// Package editor is the host-facing facade over schema generation: it gates
// runs so only one generation pass exists at a time and can push the work to
// a background worker so the host editor loop stays responsive.
package editor

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/xiaonanln/go-xnsyncutil/xnsyncutil"

	"github.com/lee-vincent/spatialschema/engine/async"
	"github.com/lee-vincent/spatialschema/engine/compiler"
	"github.com/lee-vincent/spatialschema/engine/config"
	"github.com/lee-vincent/spatialschema/engine/generator"
	"github.com/lee-vincent/spatialschema/engine/schemadb"
	"github.com/lee-vincent/spatialschema/engine/sglog"
	"github.com/lee-vincent/spatialschema/engine/typeinfo"
)

// SchemaGenerationMethod selects how a generation pass treats committed state
type SchemaGenerationMethod int

const (
	// MethodInMemoryAsset reuses the committed database and regenerates
	// incrementally
	MethodInMemoryAsset SchemaGenerationMethod = iota
	// MethodFullAssetScan discards the committed database and regenerates
	// every component ID from scratch
	MethodFullAssetScan
)

const asyncJobGroup = "schemagen"

// ErrAlreadyRunning is returned when a generation pass is requested while
// another one is still in flight. Requests are rejected, never queued.
var ErrAlreadyRunning = errors.New("schema generation is already running")

// Editor drives schema generation for a host editor process
type Editor struct {
	cfg    *config.SchemagenConfig
	runner compiler.Runner

	schemaGeneratorRunning xnsyncutil.AtomicBool
}

func New(cfg *config.SchemagenConfig, runner compiler.Runner) *Editor {
	return &Editor{cfg: cfg, runner: runner}
}

// IsSchemaGeneratorRunning reports whether a generation pass is in flight
func (ed *Editor) IsSchemaGeneratorRunning() bool {
	return ed.schemaGeneratorRunning.Load()
}

// FullScanRequired reports whether incremental generation has nothing to
// build on: no committed database or no generated schema output.
func (ed *Editor) FullScanRequired() bool {
	if !schemadb.Exists(ed.cfg.Database.File) {
		return true
	}
	if _, err := os.Stat(ed.cfg.Schema.OutputDir); err != nil {
		return true
	}
	return false
}

// IsSchemaGenerated reports whether a complete previous run left both the
// committed database and compiled schema behind
func (ed *Editor) IsSchemaGenerated() bool {
	if !schemadb.Exists(ed.cfg.Database.File) {
		return false
	}
	descriptor := filepath.Join(ed.cfg.Compiler.CompiledDir, "schema.descriptor")
	if _, err := os.Stat(descriptor); err != nil {
		return false
	}
	return true
}

// GenerateSchema runs one generation pass synchronously. A pass requested
// while another is running is rejected with ErrAlreadyRunning.
func (ed *Editor) GenerateSchema(manifest *typeinfo.Manifest, method SchemaGenerationMethod) error {
	if ed.schemaGeneratorRunning.Load() {
		return ErrAlreadyRunning
	}
	ed.schemaGeneratorRunning.Store(true)
	defer ed.schemaGeneratorRunning.Store(false)

	return ed.generate(manifest, method)
}

// GenerateSchemaAsync schedules one generation pass on the background worker
// and posts the callback to the host loop when it finishes. It reports false
// when a pass is already running.
func (ed *Editor) GenerateSchemaAsync(manifest *typeinfo.Manifest, method SchemaGenerationMethod, callback async.AsyncCallback) bool {
	if ed.schemaGeneratorRunning.Load() {
		return false
	}
	ed.schemaGeneratorRunning.Store(true)

	async.AppendAsyncJob(asyncJobGroup, func() (interface{}, error) {
		defer ed.schemaGeneratorRunning.Store(false)
		return nil, ed.generate(manifest, method)
	}, callback)
	return true
}

func (ed *Editor) generate(manifest *typeinfo.Manifest, method SchemaGenerationMethod) error {
	if method == MethodFullAssetScan || ed.FullScanRequired() {
		sglog.Infof("Full scan: discarding committed schema database %s", ed.cfg.Database.File)
		if err := schemadb.Delete(ed.cfg.Database.File); err != nil {
			return err
		}
	}
	return generator.Run(manifest, ed.cfg, ed.runner)
}
