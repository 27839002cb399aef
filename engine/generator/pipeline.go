package generator

import (
	"github.com/pkg/errors"

	"github.com/lee-vincent/spatialschema/engine/compiler"
	"github.com/lee-vincent/spatialschema/engine/config"
	"github.com/lee-vincent/spatialschema/engine/consts"
	"github.com/lee-vincent/spatialschema/engine/schemadb"
	"github.com/lee-vincent/spatialschema/engine/sglog"
	"github.com/lee-vincent/spatialschema/engine/typeinfo"
)

// PrepareDatabase loads the committed schema database for an incremental
// run. A missing or stale database falls back to a fresh one (forcing full
// regeneration); a read-only or corrupt database aborts the run so the
// operator can intervene.
func PrepareDatabase(fileName string) (*schemadb.SchemaDatabase, error) {
	db, err := schemadb.Load(fileName)
	switch errors.Cause(err) {
	case nil:
		sglog.Infof("Loaded schema database %s, next component ID %d", fileName, db.NextAvailableComponentId)
		return db, nil
	case schemadb.ErrNotFound:
		sglog.Infof("No schema database at %s, generating from scratch", fileName)
		return schemadb.New(), nil
	case schemadb.ErrStale:
		sglog.Warnf("Schema database %s predates non-destructive component ID generation, regenerating from scratch", fileName)
		if err := schemadb.Delete(fileName); err != nil {
			return nil, err
		}
		return schemadb.New(), nil
	case schemadb.ErrReadOnly:
		return nil, errors.Wrapf(err, "schema generation failed: schema database at %s is read only, make it writable before generating schema", fileName)
	default:
		return nil, errors.Wrap(err, "failed to load existing schema database; if this continues, delete the schema database and try again")
	}
}

// Run performs one complete, exclusive schema generation pass: load or reset
// the database, refresh output directories, assign classes, sublevels and
// net-cull-distance buckets in batches, compile, and persist the database.
// The database file is only written when every preceding step succeeded.
func Run(manifest *typeinfo.Manifest, cfg *config.SchemagenConfig, runner compiler.Runner) error {
	db, err := PrepareDatabase(cfg.Database.File)
	if err != nil {
		return err
	}

	if err := RefreshSchemaFiles(cfg.Schema.OutputDir); err != nil {
		return err
	}
	if err := CopyWellKnownSchemaFiles(&cfg.Schema); err != nil {
		return err
	}

	a := NewAssigner(db, &cfg.Schema)

	for start := 0; start < len(manifest.Classes); start += consts.GENERATE_BATCH_SIZE {
		end := start + consts.GENERATE_BATCH_SIZE
		if end > len(manifest.Classes) {
			end = len(manifest.Classes)
		}
		if err := a.GenerateSchemaForClasses(manifest.Classes[start:end]); err != nil {
			return err
		}
	}

	if err := a.GenerateSchemaForSublevels(manifest.LevelNamesToPaths); err != nil {
		return err
	}
	if err := a.GenerateSchemaForNetCullDistances(); err != nil {
		return err
	}

	artifacts, err := compiler.Invoke(&cfg.Schema, &cfg.Compiler, runner)
	if err != nil {
		return err
	}

	if hash, err := schemadb.HashDescriptor(artifacts.DescriptorFile); err != nil {
		// fingerprint only, not worth failing a run that compiled
		sglog.Warnf("failed to hash %s: %v", artifacts.DescriptorFile, err)
		db.SchemaDescriptorHash = 0
	} else {
		sglog.Infof("Generated schema hash for database %d", hash)
		db.SchemaDescriptorHash = hash
	}

	db.PotentialSchemaNameCollisions = a.Collisions()

	return db.Save(cfg.Database.File)
}
