package types

import "github.com/google/uuid"

// IDSet builds a lookup set from a list of IDs
func IDSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// SameIDs reports whether a and b hold the same IDs, ignoring order and duplicates
func SameIDs(a, b []uuid.UUID) bool {
	return sameSet(IDSet(a), IDSet(b))
}

// appendUnique appends ids not already in list, preserving order
func appendUnique(list []uuid.UUID, ids ...uuid.UUID) []uuid.UUID {
	seen := IDSet(list)
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		list = append(list, id)
	}
	return list
}

func removeIDs(list []uuid.UUID, ids ...uuid.UUID) []uuid.UUID {
	drop := IDSet(ids)
	out := list[:0:0]
	for _, id := range list {
		if _, ok := drop[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
