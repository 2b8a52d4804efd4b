package study

import "sort"

// table is the in-memory cache of one kind. It is not safe for concurrent use, the Store guards it.
type table[T any] struct {
	kind   Kind
	rows   map[int]T
	nextID int
	idOf   func(T) int
}

func newTable[T any](kind Kind, idOf func(T) int) *table[T] {
	return &table[T]{
		kind:   kind,
		rows:   make(map[int]T),
		nextID: 1,
		idOf:   idOf,
	}
}

// reserve returns the next free id.
func (t *table[T]) reserve() int {
	id := t.nextID
	t.nextID++
	return id
}

// observe keeps nextID strictly greater than every id seen.
func (t *table[T]) observe(id int) {
	if id >= t.nextID {
		t.nextID = id + 1
	}
}

func (t *table[T]) put(r T) {
	id := t.idOf(r)
	t.rows[id] = r
	t.observe(id)
}

func (t *table[T]) get(id int) (T, bool) {
	r, ok := t.rows[id]
	return r, ok
}

func (t *table[T]) remove(id int) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

func (t *table[T]) len() int {
	return len(t.rows)
}

// list returns the records matching keep (all if keep is nil), ordered by id.
func (t *table[T]) list(keep func(T) bool) []T {
	records := make([]T, 0, len(t.rows))
	for _, r := range t.rows {
		if keep == nil || keep(r) {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool { return t.idOf(records[i]) < t.idOf(records[j]) })
	return records
}

func (t *table[T]) snapshot() interface{} {
	return t.list(nil)
}

func (t *table[T]) restore(src SnapshotStore) (bool, error) {
	var records []T
	found, err := src.ReadSnapshot(t.kind.String(), &records)
	if err != nil || !found {
		return found, err
	}
	for _, r := range records {
		t.put(r)
	}
	return true, nil
}

// cache is the kind-agnostic view of a table used for snapshots.
type cache interface {
	snapshot() interface{}
	restore(src SnapshotStore) (bool, error)
}

var _ cache = (*table[Subject])(nil)
