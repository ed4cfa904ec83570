package session

// Set is an insertion-ordered string set. The zero value is empty and
// ready to use. With returns a new set, so snapshots sharing a Set never
// observe each other's additions.
type Set struct {
	keys  []string
	index map[string]struct{}
}

// Has reports membership.
func (s Set) Has(key string) bool {
	_, ok := s.index[key]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.keys)
}

// Values returns the members in insertion order. The slice is a copy.
func (s Set) Values() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// With returns a new set containing the receiver's members plus the given
// keys. Duplicates collapse; existing members keep their position. The
// receiver is untouched.
func (s Set) With(keys ...string) Set {
	added := 0
	for _, k := range keys {
		if !s.Has(k) {
			added++
		}
	}
	if added == 0 {
		return s
	}

	next := Set{
		keys:  make([]string, len(s.keys), len(s.keys)+added),
		index: make(map[string]struct{}, len(s.keys)+added),
	}
	copy(next.keys, s.keys)
	for k := range s.index {
		next.index[k] = struct{}{}
	}
	for _, k := range keys {
		if _, ok := next.index[k]; ok {
			continue
		}
		next.keys = append(next.keys, k)
		next.index[k] = struct{}{}
	}
	return next
}
