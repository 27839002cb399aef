package common

import "sort"

// StringSet is a set of strings
type StringSet map[string]struct{}

// Contains checks if StringSet contains the string
func (ss StringSet) Contains(elem string) bool {
	_, ok := ss[elem]
	return ok
}

// Add adds the string to StringSet
func (ss StringSet) Add(elem string) {
	ss[elem] = struct{}{}
}

// Remove removes the string from StringSet
func (ss StringSet) Remove(elem string) {
	delete(ss, elem)
}

// ToList convert StringSet to string slice
func (ss StringSet) ToList() []string {
	keys := make([]string, 0, len(ss))
	for s := range ss {
		keys = append(keys, s)
	}
	return keys
}

// SortedList converts StringSet to a lexicographically sorted string slice
func (ss StringSet) SortedList() []string {
	keys := ss.ToList()
	sort.Strings(keys)
	return keys
}

// ClassPathSet is a set of class paths
type ClassPathSet map[ClassPath]struct{}

// Contains checks if ClassPathSet contains the class path
func (cs ClassPathSet) Contains(cp ClassPath) bool {
	_, ok := cs[cp]
	return ok
}

// Add adds the class path to ClassPathSet
func (cs ClassPathSet) Add(cp ClassPath) {
	cs[cp] = struct{}{}
}

// SortedList converts ClassPathSet to a lexicographically sorted slice
func (cs ClassPathSet) SortedList() []ClassPath {
	keys := make([]ClassPath, 0, len(cs))
	for cp := range cs {
		keys = append(keys, cp)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ComponentIdSet32 is a set of component IDs
type ComponentIdSet32 map[ComponentId]struct{}

// Contains checks if the set contains the component ID
func (s ComponentIdSet32) Contains(id ComponentId) bool {
	_, ok := s[id]
	return ok
}

// Add adds the component ID to the set
func (s ComponentIdSet32) Add(id ComponentId) {
	s[id] = struct{}{}
}

// SortedList converts the set to a sorted slice
func (s ComponentIdSet32) SortedList() []ComponentId {
	ids := make([]ComponentId, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
