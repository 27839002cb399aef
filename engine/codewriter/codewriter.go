// Package codewriter emits indented schema source text deterministically.
package codewriter

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Writer accumulates indented lines of schema source text
type Writer struct {
	buf    bytes.Buffer
	indent int
}

// New creates an empty writer
func New() *Writer {
	return &Writer{}
}

// Printf writes one formatted line at the current indent
func (w *Writer) Printf(format string, args ...interface{}) *Writer {
	return w.Print(fmt.Sprintf(format, args...))
}

// Print writes one line at the current indent
func (w *Writer) Print(line string) *Writer {
	w.buf.WriteString(strings.Repeat("    ", w.indent))
	w.buf.WriteString(line)
	w.buf.WriteByte('\n')
	return w
}

// PrintNewLine writes an empty line
func (w *Writer) PrintNewLine() *Writer {
	w.buf.WriteByte('\n')
	return w
}

// Indent increases the indent level
func (w *Writer) Indent() *Writer {
	w.indent++
	return w
}

// Outdent decreases the indent level
func (w *Writer) Outdent() *Writer {
	if w.indent == 0 {
		panic("codewriter: outdent below zero")
	}
	w.indent--
	return w
}

// String returns the accumulated text
func (w *Writer) String() string {
	return w.buf.String()
}

// WriteToFile writes the accumulated text to fileName, creating parent
// directories as needed
func (w *Writer) WriteToFile(fileName string) error {
	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return errors.Wrapf(err, "fail to create directory for %s", fileName)
	}
	if err := ioutil.WriteFile(fileName, w.buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "fail to write %s", fileName)
	}
	return nil
}
