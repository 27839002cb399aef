package generator

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/lee-vincent/spatialschema/engine/codewriter"
	"github.com/lee-vincent/spatialschema/engine/consts"
	"github.com/lee-vincent/spatialschema/engine/idgen"
	"github.com/lee-vincent/spatialschema/engine/names"
)

// GenerateSchemaForNetCullDistances writes one interest component per
// distinct net-cull-distance bucket recorded during actor generation,
// minting IDs for buckets seen for the first time.
func (a *Assigner) GenerateSchemaForNetCullDistances() error {
	w := codewriter.New()
	w.Print(generatedFileNote)
	w.Print("package unreal.ncdcomponents;")

	gen := idgen.NewGenerator(a.db.NextAvailableComponentId)

	distances := make([]float64, 0, len(a.db.NetCullDistanceToComponentId))
	for distance := range a.db.NetCullDistanceToComponentId {
		distances = append(distances, distance)
	}
	sort.Float64s(distances)

	for _, distance := range distances {
		id := a.db.NetCullDistanceToComponentId[distance]
		if !id.IsValid() {
			id = gen.Next()
			a.db.NetCullDistanceToComponentId[distance] = id
		}

		componentName := fmt.Sprintf("NetCullDistanceSquared%d", uint64(distance))
		w.PrintNewLine()
		w.Printf("// distance %v", distance)
		w.Printf("component %s {", names.SchemaComponentName(componentName))
		w.Indent()
		w.Printf("id = %d;", id)
		w.Outdent().Print("}")
	}

	a.db.NextAvailableComponentId = gen.Peek()

	return w.WriteToFile(filepath.Join(a.outputDir, "NetCullDistance", "ncdcomponents"+consts.SCHEMA_FILE_EXT))
}
