package dummydb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

var ErrUnavailable = errors.New("remote store unavailable")

type (
	// DB stands in for a remote store that cannot be reached, or one that accepts writes but returns nothing.
	DB struct {
		empty bool
	}

	table[T any] struct {
		db   *DB
		name string
	}
)

var _ study.RemoteStore = (*DB)(nil) // interface compliance check

// Open returns a store failing every call with ErrUnavailable.
func Open() *DB {
	return &DB{}
}

// OpenEmpty returns a store succeeding every call without returning any row.
func OpenEmpty() *DB {
	return &DB{empty: true}
}

func (db *DB) Questions() study.RemoteTable[study.QuestionRow] {
	return &table[study.QuestionRow]{db: db, name: study.KindQuestion.String()}
}

func (db *DB) Messages() study.RemoteTable[study.Message] {
	return &table[study.Message]{db: db, name: study.KindMessage.String()}
}

func (db *DB) Files() study.RemoteTable[study.File] {
	return &table[study.File]{db: db, name: study.KindFile.String()}
}

func (db *DB) Folders() study.RemoteTable[study.Folder] {
	return &table[study.Folder]{db: db, name: study.KindFolder.String()}
}

func (t *table[T]) err(op string) error {
	if t.db.empty {
		return nil
	}
	return errors.Wrapf(ErrUnavailable, "%s %s", op, t.name)
}

func (t *table[T]) Select(context.Context, []core.DBFilter, ...core.DBOrdering) ([]T, error) {
	if err := t.err("selecting"); err != nil {
		return nil, err
	}
	return []T{}, nil
}

func (t *table[T]) Insert(context.Context, ...T) ([]T, error) {
	return nil, t.err("inserting into")
}

func (t *table[T]) Update(context.Context, []core.DBFilter, map[string]interface{}) error {
	return t.err("updating")
}

func (t *table[T]) Delete(context.Context, []core.DBFilter) error {
	return t.err("deleting from")
}
