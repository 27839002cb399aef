package compiler

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bmizerany/assert"

	"github.com/lee-vincent/spatialschema/engine/config"
)

type fakeRunner struct {
	exitCode int
	stdout   string
	stderr   string

	gotExe  string
	gotArgs []string
}

func (r *fakeRunner) Run(exe string, args []string) (int, string, string, error) {
	r.gotExe = exe
	r.gotArgs = args
	return r.exitCode, r.stdout, r.stderr, nil
}

func testConfigs(t *testing.T) (*config.SchemaConfig, *config.CompilerConfig) {
	dir, err := ioutil.TempDir("", "compiler_test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	return &config.SchemaConfig{
			OutputDir:            filepath.Join(dir, "schema/unreal/generated"),
			CoreSDKSchemaCopyDir: filepath.Join(dir, "build/dependencies/schema/standard_library"),
		}, &config.CompilerConfig{
			Path:        "schema_compiler",
			CompiledDir: filepath.Join(dir, "build/assembly/schema"),
		}
}

func TestInvokeSuccess(t *testing.T) {
	schemaCfg, compilerCfg := testConfigs(t)
	runner := &fakeRunner{exitCode: 0, stdout: "ok"}

	artifacts, err := Invoke(schemaCfg, compilerCfg, runner)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, "schema_compiler", runner.gotExe)
	assert.Equal(t, "--schema_path="+schemaCfg.OutputDir, runner.gotArgs[0])
	assert.Equal(t, "--schema_path="+schemaCfg.CoreSDKSchemaCopyDir, runner.gotArgs[1])
	assert.Equal(t, "--load_all_schema_on_schema_path", runner.gotArgs[5])
	assert.Equal(t, filepath.Join(compilerCfg.CompiledDir, "schema.descriptor"), artifacts.DescriptorFile)

	// compiled dir pre-created for the compiler
	if _, err := os.Stat(compilerCfg.CompiledDir); err != nil {
		t.Fatalf("compiled dir not created: %v", err)
	}
}

func TestInvokeAddsGDKSchemaCopyPath(t *testing.T) {
	schemaCfg, compilerCfg := testConfigs(t)
	schemaCfg.GDKSchemaCopyDir = filepath.Join(filepath.Dir(schemaCfg.OutputDir), "gdk")
	runner := &fakeRunner{}

	if _, err := Invoke(schemaCfg, compilerCfg, runner); err != nil {
		t.Fatal(err)
	}

	// the copy dir is outside the generated output tree, so it must be its
	// own schema path or its schema never reaches the descriptor
	assert.Equal(t, "--schema_path="+schemaCfg.OutputDir, runner.gotArgs[0])
	assert.Equal(t, "--schema_path="+schemaCfg.GDKSchemaCopyDir, runner.gotArgs[1])
	assert.Equal(t, "--schema_path="+schemaCfg.CoreSDKSchemaCopyDir, runner.gotArgs[2])
	assert.Equal(t, "--load_all_schema_on_schema_path", runner.gotArgs[6])
}

func TestInvokeFailureSurfacesOutput(t *testing.T) {
	schemaCfg, compilerCfg := testConfigs(t)
	runner := &fakeRunner{exitCode: 1, stderr: "unknown type 'int7'"}

	_, err := Invoke(schemaCfg, compilerCfg, runner)
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	toolErr, ok := err.(*ToolError)
	if !ok {
		t.Fatalf("expected *ToolError, got %T", err)
	}
	assert.Equal(t, 1, toolErr.ExitCode)
	assert.Equal(t, "unknown type 'int7'", toolErr.Stderr)
	assert.T(t, strings.Contains(toolErr.Error(), "unknown type 'int7'"), "verbatim stderr missing")
}

func TestInvokeClearsStaleCompiledDir(t *testing.T) {
	schemaCfg, compilerCfg := testConfigs(t)
	staleFile := filepath.Join(compilerCfg.CompiledDir, "stale.descriptor")
	if err := os.MkdirAll(compilerCfg.CompiledDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(staleFile, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Invoke(schemaCfg, compilerCfg, &fakeRunner{}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(staleFile); !os.IsNotExist(err) {
		t.Fatal("stale artifact not removed")
	}
}

func TestInvokeCreatesASTDirForASTArgs(t *testing.T) {
	schemaCfg, compilerCfg := testConfigs(t)
	compilerCfg.AdditionalArgs = "--ast_json_out=" + filepath.Join(compilerCfg.CompiledDir, "ast")

	if _, err := Invoke(schemaCfg, compilerCfg, &fakeRunner{}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(compilerCfg.CompiledDir, "ast")); err != nil {
		t.Fatalf("ast dir not created: %v", err)
	}
}
