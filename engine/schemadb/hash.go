package schemadb

import (
	"hash/fnv"
	"io/ioutil"

	"github.com/pkg/errors"
)

// HashDescriptor fingerprints the compiled schema descriptor for downstream
// change detection. The hash is not an integrity check of the database.
func HashDescriptor(fileName string) (uint32, error) {
	dataBytes, err := ioutil.ReadFile(fileName)
	if err != nil {
		return 0, errors.Wrapf(err, "fail to read schema descriptor %s", fileName)
	}

	h := fnv.New32a()
	h.Write(dataBytes)
	return h.Sum32(), nil
}
