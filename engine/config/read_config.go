package config

import (
	"encoding/json"
	"path"
	"strings"
	"sync"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"

	"github.com/lee-vincent/spatialschema/engine/consts"
	"github.com/lee-vincent/spatialschema/engine/sglog"
)

const (
	_DEFAULT_CONFIG_FILE  = "schemagen.ini"
	_DEFAULT_LOG_LEVEL    = "debug"
	_DEFAULT_OUTPUT_DIR   = "schema/unreal/generated"
	_DEFAULT_COMPILED_DIR = "build/assembly/schema"
	_DEFAULT_DB_FILE      = "Content/Spatial/SchemaDatabase" + consts.SCHEMA_DATABASE_FILE_EXT
	_DEFAULT_COMPILER_EXE = "schema_compiler"
)

var (
	configFilePath  = _DEFAULT_CONFIG_FILE
	schemagenConfig *SchemagenConfig
	configLock      sync.Mutex
)

// SchemaConfig defines fields of schema output config
type SchemaConfig struct {
	OutputDir            string // directory for generated schema files
	GDKSchemaDir         string // well-known GDK schema to copy alongside generated output
	CoreSDKSchemaDir     string // standard library schema to copy alongside generated output
	GDKSchemaCopyDir     string
	CoreSDKSchemaCopyDir string
	MaxDynamicSubobjects int
	LogFile              string
	LogStderr            bool
	LogLevel             string
}

// DatabaseConfig defines fields of schema database config
type DatabaseConfig struct {
	File string // path of the persisted schema database
}

// CompilerConfig defines fields of the external schema compiler config
type CompilerConfig struct {
	Path           string // schema_compiler executable
	CompiledDir    string // output directory for compiled schema artifacts
	AdditionalArgs string // extra arguments passed through verbatim
}

// SchemagenConfig defines the total schemagen config file structure
type SchemagenConfig struct {
	Schema   SchemaConfig
	Database DatabaseConfig
	Compiler CompilerConfig
}

// SetConfigFile sets the config file path (schemagen.ini by default)
func SetConfigFile(f string) {
	configFilePath = f
}

// GetConfigDir returns the directory of schemagen.ini
func GetConfigDir() string {
	dir, _ := path.Split(configFilePath)
	return dir
}

// GetConfigFilePath returns the config file path
func GetConfigFilePath() string {
	return configFilePath
}

// Get returns the total schemagen config
func Get() *SchemagenConfig {
	configLock.Lock()
	defer configLock.Unlock()
	if schemagenConfig == nil {
		schemagenConfig = readSchemagenConfig()
	}
	return schemagenConfig
}

// Reload forces schemagen to reload the whole config
func Reload() *SchemagenConfig {
	configLock.Lock()
	schemagenConfig = nil
	configLock.Unlock()

	return Get()
}

// GetSchema returns the schema output config
func GetSchema() *SchemaConfig {
	return &Get().Schema
}

// GetDatabase returns the schema database config
func GetDatabase() *DatabaseConfig {
	return &Get().Database
}

// GetCompiler returns the schema compiler config
func GetCompiler() *CompilerConfig {
	return &Get().Compiler
}

// DumpPretty format config to string in pretty format
func DumpPretty(cfg interface{}) string {
	s, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err.Error()
	}
	return string(s)
}

func readSchemagenConfig() *SchemagenConfig {
	config := SchemagenConfig{}
	sglog.Infof("Using config file: %s", configFilePath)
	iniFile, err := ini.Load(configFilePath)
	checkConfigError(err, "")

	readSchemaConfig(iniFile.Section("schema"), &config.Schema)
	readDatabaseConfig(iniFile.Section("database"), &config.Database)
	readCompilerConfig(iniFile.Section("compiler"), &config.Compiler)

	for _, sec := range iniFile.Sections() {
		secName := strings.ToLower(sec.Name())
		if secName == "default" || secName == "schema" || secName == "database" || secName == "compiler" {
			continue
		}
		sglog.Errorf("unknown section: %s", secName)
	}

	validateConfig(&config)
	return &config
}

func readSchemaConfig(sec *ini.Section, sc *SchemaConfig) {
	sc.OutputDir = _DEFAULT_OUTPUT_DIR
	sc.MaxDynamicSubobjects = consts.DEFAULT_MAX_DYNAMIC_SUBOBJECTS
	sc.LogFile = "schemagen.log"
	sc.LogStderr = true
	sc.LogLevel = _DEFAULT_LOG_LEVEL

	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "output_dir" {
			sc.OutputDir = key.MustString(sc.OutputDir)
		} else if name == "gdk_schema_dir" {
			sc.GDKSchemaDir = key.MustString(sc.GDKSchemaDir)
		} else if name == "core_sdk_schema_dir" {
			sc.CoreSDKSchemaDir = key.MustString(sc.CoreSDKSchemaDir)
		} else if name == "gdk_schema_copy_dir" {
			sc.GDKSchemaCopyDir = key.MustString(sc.GDKSchemaCopyDir)
		} else if name == "core_sdk_schema_copy_dir" {
			sc.CoreSDKSchemaCopyDir = key.MustString(sc.CoreSDKSchemaCopyDir)
		} else if name == "max_dynamic_subobjects" {
			sc.MaxDynamicSubobjects = key.MustInt(sc.MaxDynamicSubobjects)
		} else if name == "log_file" {
			sc.LogFile = key.MustString(sc.LogFile)
		} else if name == "log_stderr" {
			sc.LogStderr = key.MustBool(sc.LogStderr)
		} else if name == "log_level" {
			sc.LogLevel = key.MustString(sc.LogLevel)
		} else {
			sglog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
}

func readDatabaseConfig(sec *ini.Section, dc *DatabaseConfig) {
	dc.File = _DEFAULT_DB_FILE

	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "file" {
			dc.File = key.MustString(dc.File)
		} else {
			sglog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
}

func readCompilerConfig(sec *ini.Section, cc *CompilerConfig) {
	cc.Path = _DEFAULT_COMPILER_EXE
	cc.CompiledDir = _DEFAULT_COMPILED_DIR

	for _, key := range sec.Keys() {
		name := strings.ToLower(key.Name())
		if name == "path" {
			cc.Path = key.MustString(cc.Path)
		} else if name == "compiled_dir" {
			cc.CompiledDir = key.MustString(cc.CompiledDir)
		} else if name == "additional_args" {
			cc.AdditionalArgs = key.MustString(cc.AdditionalArgs)
		} else {
			sglog.Panicf("section %s has unknown key: %s", sec.Name(), key.Name())
		}
	}
}

func validateConfig(config *SchemagenConfig) {
	if config.Schema.OutputDir == "" {
		sglog.Fatalf("schema output_dir is not set")
	}
	if config.Database.File == "" {
		sglog.Fatalf("database file is not set")
	}
	if config.Schema.MaxDynamicSubobjects <= 0 {
		sglog.Fatalf("max_dynamic_subobjects must be positive, not %d", config.Schema.MaxDynamicSubobjects)
	}
}

func checkConfigError(err error, msg string) {
	if err != nil {
		if msg == "" {
			msg = err.Error()
		}
		sglog.Panic(errors.Wrap(err, msg))
	}
}
