package config

import (
	"fmt"
	"os"
	"testing"

	"github.com/bmizerany/assert"

	"github.com/lee-vincent/spatialschema/engine/sglog"
)

func init() {
	SetConfigFile("../../schemagen.ini.sample")
}

func TestLoad(t *testing.T) {
	config := Get()
	sglog.Debugf("schemagen config: \n%s", DumpPretty(config))
	if config == nil {
		t.FailNow()
	}
	if config.Schema.OutputDir == "" {
		t.Errorf("schema output dir not found")
	}
	if config.Database.File == "" {
		t.Errorf("database file not found")
	}
	if config.Compiler.Path == "" {
		t.Errorf("compiler path not found")
	}
}

func TestReload(t *testing.T) {
	Get()
	config := Reload()
	sglog.Debugf("schemagen config: \n%s", DumpPretty(config))
}

func TestGetSchema(t *testing.T) {
	cfg := GetSchema()
	assert.T(t, cfg != nil, "schema config is nil")
	assert.Equal(t, 3, cfg.MaxDynamicSubobjects)
	fmt.Fprintf(os.Stderr, "%s\n", DumpPretty(cfg))
}

func TestGetDatabase(t *testing.T) {
	assert.T(t, GetDatabase() != nil, "database config is nil")
}

func TestGetCompiler(t *testing.T) {
	cfg := GetCompiler()
	assert.T(t, cfg != nil, "compiler config is nil")
	assert.Equal(t, "build/assembly/schema", cfg.CompiledDir)
}
