package metrics

import (
	"sort"
	"strings"
)

// NoIndex is passed to an add operation when the caller has no batch
// position for the metric.
const NoIndex = -1

// RequestIDs carries the request identifiers for one inference batch.
// A batch mapping resolves each batch index to its request id; a single
// id covers every metric; the zero value means no request context at
// all, which routes metrics onto the error level.
type RequestIDs struct {
	byIndex   map[int]string
	single    string
	hasSingle bool
}

// ForBatch builds a RequestIDs from a batch-index to request-id
// mapping. The mapping is copied; later caller mutation has no effect.
func ForBatch(ids map[int]string) RequestIDs {
	copied := make(map[int]string, len(ids))
	for idx, id := range ids {
		copied[idx] = id
	}
	return RequestIDs{byIndex: copied}
}

// Single builds a RequestIDs that resolves every index to one id.
func Single(id string) RequestIDs {
	return RequestIDs{single: id, hasSingle: true}
}

// resolve maps a batch index to a request id. For a batch mapping, an
// index that is present resolves to its id and anything else (including
// NoIndex) falls back to the comma-joined ids of the whole batch. A
// single id resolves regardless of index. The second return is false
// only for the zero value.
func (r RequestIDs) resolve(idx int) (string, bool) {
	if r.byIndex != nil {
		if idx != NoIndex {
			if id, ok := r.byIndex[idx]; ok {
				return id, true
			}
		}
		return r.joined(), true
	}
	if r.hasSingle {
		return r.single, true
	}
	return "", false
}

// joined renders the whole batch as one identifier, in ascending batch
// index order so the result is deterministic.
func (r RequestIDs) joined() string {
	indexes := make([]int, 0, len(r.byIndex))
	for idx := range r.byIndex {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	ids := make([]string, 0, len(indexes))
	for _, idx := range indexes {
		ids = append(ids, r.byIndex[idx])
	}
	return strings.Join(ids, ",")
}
