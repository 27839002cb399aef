package common

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestStringSet(t *testing.T) {
	ss := StringSet{}
	ss.Add("1")
	ss.Add("2")
	assert.T(t, ss.Contains("1"), "should contain")
	assert.T(t, ss.Contains("2"), "should contain")
	ss.Remove("2")
	assert.T(t, !ss.Contains("2"), "should not contain")
}

func TestClassPathSetSortedList(t *testing.T) {
	cs := ClassPathSet{}
	cs.Add("/Game/B")
	cs.Add("/Game/A")
	cs.Add("/Game/C")
	sorted := cs.SortedList()
	assert.Equal(t, 3, len(sorted))
	assert.Equal(t, ClassPath("/Game/A"), sorted[0])
	assert.Equal(t, ClassPath("/Game/B"), sorted[1])
	assert.Equal(t, ClassPath("/Game/C"), sorted[2])
}

func TestComponentIdSetSortedList(t *testing.T) {
	s := ComponentIdSet32{}
	s.Add(10002)
	s.Add(10000)
	s.Add(10001)
	ids := s.SortedList()
	assert.Equal(t, []ComponentId{10000, 10001, 10002}, ids)
}

func TestAllCategories(t *testing.T) {
	cats := AllCategories()
	assert.Equal(t, 3, len(cats))
	assert.Equal(t, "Data", cats[0].String())
	assert.Equal(t, "OwnerOnly", cats[1].String())
	assert.Equal(t, "Handover", cats[2].String())
}
