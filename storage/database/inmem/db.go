package inmemdb

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

var ErrUnknownColumn = errors.New("unknown column")

type (
	// DB is an in-process remote store. Rows are addressed by their JSON (snake_case) names.
	DB struct {
		questions *table[study.QuestionRow]
		messages  *table[study.Message]
		files     *table[study.File]
		folders   *table[study.Folder]
	}

	table[T any] struct {
		sync.RWMutex
		name    string
		pkCount int
		rows    map[int]T
	}

	record map[string]interface{}
)

var _ study.RemoteStore = (*DB)(nil) // interface compliance check

func Open() *DB {
	return &DB{
		questions: newTable[study.QuestionRow](study.KindQuestion.String()),
		messages:  newTable[study.Message](study.KindMessage.String()),
		files:     newTable[study.File](study.KindFile.String()),
		folders:   newTable[study.Folder](study.KindFolder.String()),
	}
}

func newTable[T any](name string) *table[T] {
	return &table[T]{name: name, rows: make(map[int]T)}
}

func (db *DB) Questions() study.RemoteTable[study.QuestionRow] { return db.questions }
func (db *DB) Messages() study.RemoteTable[study.Message]      { return db.messages }
func (db *DB) Files() study.RemoteTable[study.File]            { return db.files }
func (db *DB) Folders() study.RemoteTable[study.Folder]        { return db.folders }

type entry[T any] struct {
	row T
	rec record
}

// query returns the rows matching filters, ordered by id. Must be called with the lock held.
func (t *table[T]) query(filters []core.DBFilter) ([]entry[T], error) {
	ids := make([]int, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	entries := make([]entry[T], 0, len(ids))
	for _, id := range ids {
		rec, err := toRecord(t.rows[id])
		if err != nil {
			return nil, err
		}
		ok, err := rec.matches(filters)
		if err != nil {
			return nil, errors.Wrapf(err, "querying %s", t.name)
		}
		if ok {
			entries = append(entries, entry[T]{row: t.rows[id], rec: rec})
		}
	}
	return entries, nil
}

func (t *table[T]) Select(_ context.Context, filters []core.DBFilter, ordering ...core.DBOrdering) ([]T, error) {
	t.RLock()
	defer t.RUnlock()

	entries, err := t.query(filters)
	if err != nil {
		return nil, err
	}
	for _, ord := range ordering {
		if len(entries) > 0 {
			if _, ok := entries[0].rec[ord.Field]; !ok {
				return nil, errors.Wrapf(ErrUnknownColumn, "ordering %s by %q", t.name, ord.Field)
			}
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		for _, ord := range ordering {
			c := compare(entries[i].rec[ord.Field], entries[j].rec[ord.Field])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})

	rows := make([]T, len(entries))
	for i, e := range entries {
		rows[i] = e.row
	}
	return rows, nil
}

func (t *table[T]) Insert(_ context.Context, rows ...T) ([]T, error) {
	t.Lock()
	defer t.Unlock()

	inserted := make([]T, 0, len(rows))
	for _, row := range rows {
		rec, err := toRecord(row)
		if err != nil {
			return nil, err
		}
		t.pkCount++
		rec["id"] = t.pkCount
		if row, err = fromRecord[T](rec); err != nil {
			return nil, err
		}
		t.rows[t.pkCount] = row
		inserted = append(inserted, row)
	}
	return inserted, nil
}

func (t *table[T]) Update(_ context.Context, filters []core.DBFilter, patch map[string]interface{}) error {
	t.Lock()
	defer t.Unlock()

	entries, err := t.query(filters)
	if err != nil {
		return err
	}
	for _, e := range entries {
		id := int(e.rec["id"].(float64))
		for field, value := range patch {
			if _, ok := e.rec[field]; !ok || field == "id" {
				return errors.Wrapf(ErrUnknownColumn, "updating %s.%s", t.name, field)
			}
			e.rec[field] = value
		}
		row, err := fromRecord[T](e.rec)
		if err != nil {
			return err
		}
		t.rows[id] = row
	}
	return nil
}

func (t *table[T]) Delete(_ context.Context, filters []core.DBFilter) error {
	t.Lock()
	defer t.Unlock()

	entries, err := t.query(filters)
	if err != nil {
		return err
	}
	for _, e := range entries {
		delete(t.rows, int(e.rec["id"].(float64)))
	}
	return nil
}

func toRecord[T any](row T) (record, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return nil, errors.Wrap(err, "encoding row")
	}
	var rec record
	if err = json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(err, "decoding row")
	}
	return rec, nil
}

func fromRecord[T any](rec record) (T, error) {
	var row T
	data, err := json.Marshal(rec)
	if err != nil {
		return row, errors.Wrap(err, "encoding record")
	}
	if err = json.Unmarshal(data, &row); err != nil {
		return row, errors.Wrap(err, "decoding record")
	}
	return row, nil
}

// matches compares the JSON encodings of the column values and the filter values.
func (rec record) matches(filters []core.DBFilter) (bool, error) {
	for _, f := range filters {
		v, ok := rec[f.Field]
		if !ok {
			return false, errors.Wrapf(ErrUnknownColumn, "%q", f.Field)
		}
		got, err := json.Marshal(v)
		if err != nil {
			return false, err
		}
		want, err := json.Marshal(f.Value)
		if err != nil {
			return false, err
		}
		if !bytes.Equal(got, want) {
			return false, nil
		}
	}
	return true, nil
}

// compare orders numbers, timestamps and strings. nil sorts first.
func compare(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	switch av := a.(type) {
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		}
		return 1
	case string:
		bv, _ := b.(string)
		at, aErr := time.Parse(time.RFC3339Nano, av)
		bt, bErr := time.Parse(time.RFC3339Nano, bv)
		if aErr == nil && bErr == nil {
			return at.Compare(bt)
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	}
	return 0
}
