package typeinfo

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmizerany/assert"
)

func TestVisitOrder(t *testing.T) {
	leaf := &TypeInfo{ClassPath: "/Game/Leaf.Leaf_C", ClassName: "Leaf", Kind: KindSubobject}
	mid := &TypeInfo{
		ClassPath:  "/Game/Mid.Mid_C",
		ClassName:  "Mid",
		Kind:       KindSubobject,
		Subobjects: map[string]*TypeInfo{"Leaf": leaf},
	}
	root := &TypeInfo{
		ClassPath: "/Game/Root.Root_C",
		ClassName: "Root",
		Kind:      KindActor,
		Subobjects: map[string]*TypeInfo{
			"ZMid": mid,
			"AMid": mid,
		},
	}

	var visited []string
	root.Visit(func(node *TypeInfo) bool {
		visited = append(visited, node.ClassName)
		return true
	})
	// subobjects walked in declared-name order, depth first
	assert.Equal(t, []string{"Root", "Mid", "Leaf", "Mid", "Leaf"}, visited)
}

func TestPropertyGroupCategory(t *testing.T) {
	assert.Equal(t, "MultiClient", GroupMultiClient.String())
	assert.Equal(t, "SingleClient", GroupSingleClient.String())
	assert.T(t, GroupMultiClient.Category() != GroupSingleClient.Category(), "groups map to distinct categories")
}

func TestLoadManifestSortsClasses(t *testing.T) {
	dir, err := ioutil.TempDir("", "typeinfo_test")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	manifestJSON := `{
		"classes": [
			{"classPath": "/Game/B.B_C", "className": "B", "kind": 0},
			{"classPath": "/Game/A.A_C", "className": "A", "kind": 0,
			 "replicated": {"0": [{"name": "Health", "path": "/Game/A.A_C:Health", "schemaType": "int32"}]}}
		],
		"levelNamesToPaths": {"Hub": ["/Game/Maps/Hub"]}
	}`
	fileName := filepath.Join(dir, "classes.json")
	if err := ioutil.WriteFile(fileName, []byte(manifestJSON), 0644); err != nil {
		t.Fatal(err)
	}

	manifest, err := LoadManifest(fileName)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, len(manifest.Classes))
	assert.Equal(t, "A", manifest.Classes[0].ClassName)
	assert.Equal(t, "B", manifest.Classes[1].ClassName)
	assert.Equal(t, 1, len(manifest.Classes[0].RepData(GroupMultiClient)))
	assert.Equal(t, []string{"/Game/Maps/Hub"}, manifest.LevelNamesToPaths["Hub"])

	if _, err := LoadManifest(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("missing manifest must fail")
	}
}
