// Package compiler invokes the external schema_compiler binary that
// validates and compiles emitted schema text into a binary descriptor.
package compiler

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/lee-vincent/spatialschema/engine/config"
	"github.com/lee-vincent/spatialschema/engine/sglog"
)

// Runner executes the compiler binary; substituted with a fake in tests
type Runner interface {
	Run(exe string, args []string) (exitCode int, stdout string, stderr string, err error)
}

// ExecRunner runs the real binary through os/exec
type ExecRunner struct{}

// Run executes exe with args, capturing output and exit code
func (ExecRunner) Run(exe string, args []string) (int, string, string, error) {
	cmd := exec.Command(exe, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), stdout.String(), stderr.String(), nil
		}
		return -1, stdout.String(), stderr.String(), errors.Wrapf(err, "fail to start %s", exe)
	}
	return 0, stdout.String(), stderr.String(), nil
}

// ToolError reports a non-zero compiler exit with its verbatim output
type ToolError struct {
	ExitCode int
	Args     []string
	Stdout   string
	Stderr   string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("schema_compiler failed to generate compiled schema for arguments `%s` (exit %d): %s",
		strings.Join(e.Args, " "), e.ExitCode, e.Stderr)
}

// Artifacts are the output paths of one compiler invocation
type Artifacts struct {
	DescriptorFile string
	BundleFile     string
	BundleJSONFile string
}

// Invoke runs one compiler pass over the generated and copied schema
// directories. The exit code is the sole success signal; on failure the
// compiler's output is surfaced verbatim.
func Invoke(schemaCfg *config.SchemaConfig, compilerCfg *config.CompilerConfig, runner Runner) (*Artifacts, error) {
	compiledDir := compilerCfg.CompiledDir
	artifacts := &Artifacts{
		DescriptorFile: filepath.Join(compiledDir, "schema.descriptor"),
		BundleFile:     filepath.Join(compiledDir, "schema.sb"),
		BundleJSONFile: filepath.Join(compiledDir, "schema.json"),
	}

	// Blow away lingering artifacts from previous runs.
	if _, err := os.Stat(compiledDir); err == nil {
		if err := os.RemoveAll(compiledDir); err != nil {
			return nil, errors.Wrapf(err, "could not delete pre-existing compiled schema directory %s", compiledDir)
		}
	}

	// schema_compiler cannot create folders.
	if err := os.MkdirAll(compiledDir, 0755); err != nil {
		return nil, errors.Wrapf(err, "could not create compiled schema directory %s", compiledDir)
	}

	args := []string{"--schema_path=" + schemaCfg.OutputDir}
	// The copied GDK schema lives outside the generated output tree and must
	// be a schema path of its own to end up in the descriptor.
	if schemaCfg.GDKSchemaCopyDir != "" {
		args = append(args, "--schema_path="+schemaCfg.GDKSchemaCopyDir)
	}
	args = append(args,
		"--schema_path="+schemaCfg.CoreSDKSchemaCopyDir,
		"--descriptor_set_out="+artifacts.DescriptorFile,
		"--bundle_out="+artifacts.BundleFile,
		"--bundle_json_out="+artifacts.BundleJSONFile,
		"--load_all_schema_on_schema_path",
	)
	if compilerCfg.AdditionalArgs != "" {
		extra := strings.Fields(compilerCfg.AdditionalArgs)
		if needsASTDir(extra) {
			astDir := filepath.Join(compiledDir, "ast")
			if err := os.MkdirAll(astDir, 0755); err != nil {
				return nil, errors.Wrapf(err, "could not create compiled schema AST directory %s", astDir)
			}
		}
		args = append(args, extra...)
	}

	sglog.Infof("Starting '%s' with `%s` arguments", compilerCfg.Path, strings.Join(args, " "))

	exitCode, stdout, stderr, err := runner.Run(compilerCfg.Path, args)
	if err != nil {
		return nil, err
	}
	if exitCode != 0 {
		return nil, &ToolError{ExitCode: exitCode, Args: args, Stdout: stdout, Stderr: stderr}
	}

	sglog.Infof("schema_compiler successfully generated compiled schema: %s", stdout)
	return artifacts, nil
}

func needsASTDir(extraArgs []string) bool {
	for _, arg := range extraArgs {
		if strings.Contains(arg, "ast_proto_out") || strings.Contains(arg, "ast_json_out") {
			return true
		}
	}
	return false
}
