package generator

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/lee-vincent/spatialschema/engine/config"
	"github.com/lee-vincent/spatialschema/engine/sglog"
)

// RefreshSchemaFiles deletes and recreates the schema output directory so
// every run regenerates from a clean slate instead of diffing files.
func RefreshSchemaFiles(schemaOutputPath string) error {
	if _, err := os.Stat(schemaOutputPath); err == nil {
		if err := os.RemoveAll(schemaOutputPath); err != nil {
			return errors.Wrapf(err, "could not clean the schema directory %s, make sure the directory and the files inside are writable", schemaOutputPath)
		}
	}

	if err := os.MkdirAll(schemaOutputPath, 0755); err != nil {
		return errors.Wrapf(err, "could not create schema directory %s, make sure the parent directory is writable", schemaOutputPath)
	}
	return nil
}

// CopyWellKnownSchemaFiles copies the static GDK and standard-library schema
// next to the generated output so the compiler sees one consistent tree.
// Unconfigured source directories are skipped.
func CopyWellKnownSchemaFiles(schemaCfg *config.SchemaConfig) error {
	if schemaCfg.GDKSchemaDir != "" {
		if err := RefreshSchemaFiles(schemaCfg.GDKSchemaCopyDir); err != nil {
			return err
		}
		if err := copyDirectoryTree(schemaCfg.GDKSchemaDir, schemaCfg.GDKSchemaCopyDir); err != nil {
			return errors.Wrapf(err, "could not copy gdk schema to %s, make sure the directory is writable", schemaCfg.GDKSchemaCopyDir)
		}
	}

	if schemaCfg.CoreSDKSchemaDir != "" {
		if err := RefreshSchemaFiles(schemaCfg.CoreSDKSchemaCopyDir); err != nil {
			return err
		}
		if err := copyDirectoryTree(schemaCfg.CoreSDKSchemaDir, schemaCfg.CoreSDKSchemaCopyDir); err != nil {
			return errors.Wrapf(err, "could not copy standard library schema to %s, make sure the directory is writable", schemaCfg.CoreSDKSchemaCopyDir)
		}
	}
	return nil
}

func copyDirectoryTree(srcDir string, dstDir string) error {
	entries, err := ioutil.ReadDir(srcDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(srcDir, entry.Name())
		dstPath := filepath.Join(dstDir, entry.Name())
		if entry.IsDir() {
			if err := os.MkdirAll(dstPath, 0755); err != nil {
				return err
			}
			if err := copyDirectoryTree(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		dataBytes, err := ioutil.ReadFile(srcPath)
		if err != nil {
			return err
		}
		if err := ioutil.WriteFile(dstPath, dataBytes, entry.Mode().Perm()); err != nil {
			return err
		}
		sglog.Debugf("copied %s to %s", srcPath, dstPath)
	}
	return nil
}
