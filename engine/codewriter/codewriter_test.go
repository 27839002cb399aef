package codewriter

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmizerany/assert"
)

func TestWriterIndentation(t *testing.T) {
	w := New()
	w.Printf("component %s {", "PlayerPawn")
	w.Indent()
	w.Printf("id = %d;", 10000)
	w.Outdent()
	w.Print("}")

	expected := "component PlayerPawn {\n    id = 10000;\n}\n"
	assert.Equal(t, expected, w.String())
}

func TestWriterDeterminism(t *testing.T) {
	emit := func() string {
		w := New()
		w.Print("package unreal.generated;").PrintNewLine()
		w.Printf("component %s {", "Foo").Indent().Printf("id = %d;", 10001).Outdent().Print("}")
		return w.String()
	}
	assert.Equal(t, emit(), emit())
}

func TestWriteToFileCreatesDirs(t *testing.T) {
	dir, err := ioutil.TempDir("", "codewriter_test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	fileName := filepath.Join(dir, "Sublevels", "sublevels.schema")
	w := New()
	w.Print("package unreal.sublevels;")
	if err := w.WriteToFile(fileName); err != nil {
		t.Fatal(err)
	}

	data, err := ioutil.ReadFile(fileName)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "package unreal.sublevels;\n", string(data))
}

func TestOutdentBelowZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	New().Outdent()
}
