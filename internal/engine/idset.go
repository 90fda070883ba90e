package engine

import (
	"encoding/json"
	"slices"
)

// IDSet is an unordered set of item ids. Engine functions never modify the
// sets they are given.
type IDSet map[int]struct{}

func NewIDSet(ids ...int) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id int) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) HasAll(ids []int) bool {
	for _, id := range ids {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// With returns a copy of s that also contains ids.
func (s IDSet) With(ids ...int) IDSet {
	out := s.Clone()
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

// Without returns a copy of s minus ids.
func (s IDSet) Without(ids ...int) IDSet {
	out := s.Clone()
	for _, id := range ids {
		delete(out, id)
	}
	return out
}

func (s IDSet) Union(o IDSet) IDSet {
	out := s.Clone()
	for id := range o {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the ids in ascending order.
func (s IDSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
