package typeinfo

import (
	"encoding/json"
	"io/ioutil"
	"sort"

	"github.com/pkg/errors"
)

// Manifest is the class-descriptor dump produced by the host reflection
// exporter, consumed as the input boundary of schema generation
type Manifest struct {
	Classes []*TypeInfo `json:"classes"`
	// LevelNamesToPaths maps level names to every package path using that
	// name; duplicate names across different paths are legal
	LevelNamesToPaths map[string][]string `json:"levelNamesToPaths"`
}

// LoadManifest reads and parses a class-descriptor manifest file
func LoadManifest(fileName string) (*Manifest, error) {
	dataBytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "fail to read manifest %s", fileName)
	}

	var manifest Manifest
	if err := json.Unmarshal(dataBytes, &manifest); err != nil {
		return nil, errors.Wrapf(err, "fail to parse manifest %s", fileName)
	}

	sort.Slice(manifest.Classes, func(i, j int) bool {
		return manifest.Classes[i].ClassPath < manifest.Classes[j].ClassPath
	})
	return &manifest, nil
}
