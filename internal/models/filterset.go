package models

// FilterSet is a conjunction of exact-match attribute constraints extracted
// from one query. Insertion order is preserved so evaluation and logging
// are deterministic. An empty set means "no structured constraint".
type FilterSet struct {
	keys []string
	vals map[string]string
}

func NewFilterSet() *FilterSet {
	return &FilterSet{vals: make(map[string]string)}
}

// Set records a constraint. The first value wins per attribute; extractors
// only fire once per category so a second Set for the same key is a no-op.
func (f *FilterSet) Set(key, value string) {
	if _, ok := f.vals[key]; ok {
		return
	}
	f.keys = append(f.keys, key)
	f.vals[key] = value
}

func (f *FilterSet) Get(key string) (string, bool) {
	v, ok := f.vals[key]
	return v, ok
}

func (f *FilterSet) Len() int {
	return len(f.keys)
}

func (f *FilterSet) Empty() bool {
	return len(f.keys) == 0
}

// Keys returns constraint names in insertion order.
func (f *FilterSet) Keys() []string {
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}
