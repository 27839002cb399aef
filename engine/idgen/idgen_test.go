package idgen

import (
	"testing"

	"github.com/bmizerany/assert"

	"github.com/lee-vincent/spatialschema/engine/common"
	"github.com/lee-vincent/spatialschema/engine/consts"
)

func TestNextIsMonotonicAndUnique(t *testing.T) {
	gen := NewGenerator(consts.STARTING_GENERATED_COMPONENT_ID)
	seen := map[common.ComponentId]struct{}{}
	prev := common.ComponentId(0)
	for i := 0; i < 1000; i++ {
		id := gen.Next()
		if _, dup := seen[id]; dup {
			t.Fatalf("id %d issued twice", id)
		}
		seen[id] = struct{}{}
		assert.T(t, id >= consts.STARTING_GENERATED_COMPONENT_ID, "id inside reserved range")
		assert.T(t, id > prev || prev == 0, "id not increasing")
		prev = id
	}
}

func TestPeekDoesNotMint(t *testing.T) {
	gen := NewGenerator(20000)
	assert.Equal(t, common.ComponentId(20000), gen.Peek())
	assert.Equal(t, common.ComponentId(20000), gen.Peek())
	assert.Equal(t, common.ComponentId(20000), gen.Next())
	assert.Equal(t, common.ComponentId(20001), gen.Peek())
}

func TestReservedRangeRejected(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for reserved start ID")
		}
	}()
	NewGenerator(consts.STARTING_GENERATED_COMPONENT_ID - 1)
}
