package generator

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/lee-vincent/spatialschema/engine/codewriter"
	"github.com/lee-vincent/spatialschema/engine/common"
	"github.com/lee-vincent/spatialschema/engine/consts"
	"github.com/lee-vincent/spatialschema/engine/idgen"
	"github.com/lee-vincent/spatialschema/engine/names"
)

func writeLevelComponent(w *codewriter.Writer, levelName string, id common.ComponentId, levelPath string) {
	w.PrintNewLine()
	w.Printf("// %s", levelPath)
	w.Printf("component %s {", names.SchemaComponentName(levelName))
	w.Indent()
	w.Printf("id = %d;", id)
	w.Outdent().Print("}")
}

// GenerateSchemaForSublevels assigns one component per unique level path,
// reusing committed IDs. Duplicate level names across different paths stay
// distinct keys; only the emitted component name carries an index suffix.
func (a *Assigner) GenerateSchemaForSublevels(levelNamesToPaths map[string][]string) error {
	w := codewriter.New()
	w.Print(generatedFileNote)
	w.Print("package unreal.sublevels;")

	gen := idgen.NewGenerator(a.db.NextAvailableComponentId)

	levelNames := make([]string, 0, len(levelNamesToPaths))
	for name := range levelNamesToPaths {
		levelNames = append(levelNames, name)
	}
	sort.Strings(levelNames)

	for _, levelName := range levelNames {
		levelPaths := append([]string(nil), levelNamesToPaths[levelName]...)
		sort.Strings(levelPaths)

		if len(levelPaths) > 1 {
			// Write multiple numbered components.
			for i, levelPath := range levelPaths {
				id := a.levelComponentId(gen, levelPath)
				writeLevelComponent(w, fmt.Sprintf("%sInd%d", levelName, i), id, levelPath)
			}
		} else if len(levelPaths) == 1 {
			// Write a single component.
			id := a.levelComponentId(gen, levelPaths[0])
			writeLevelComponent(w, levelName, id, levelPaths[0])
		}
	}

	a.db.NextAvailableComponentId = gen.Peek()

	return w.WriteToFile(filepath.Join(a.outputDir, "Sublevels", "sublevels"+consts.SCHEMA_FILE_EXT))
}

func (a *Assigner) levelComponentId(gen *idgen.Generator, levelPath string) common.ComponentId {
	id := a.db.LevelPathToComponentId[levelPath]
	if !id.IsValid() {
		id = gen.Next()
		a.db.LevelPathToComponentId[levelPath] = id
	}
	return id
}
