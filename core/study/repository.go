package study

//go:generate mockgen -destination=mocks/mock_snapshot_store.go -package=mocks github.com/trezcool/studyhub/core/study SnapshotStore

import (
	"context"

	"github.com/trezcool/studyhub/core"
)

type (
	// RemoteTable is a table of the remote store. Rows use the remote (snake_case) shape.
	RemoteTable[T any] interface {
		Select(ctx context.Context, filters []core.DBFilter, ordering ...core.DBOrdering) ([]T, error)
		// Insert returns the inserted rows as stored remotely, IDs included.
		Insert(ctx context.Context, rows ...T) ([]T, error)
		Update(ctx context.Context, filters []core.DBFilter, patch map[string]interface{}) error
		Delete(ctx context.Context, filters []core.DBFilter) error
	}

	RemoteStore interface {
		Questions() RemoteTable[QuestionRow]
		Messages() RemoteTable[Message]
		Files() RemoteTable[File]
		Folders() RemoteTable[Folder]
	}

	// SnapshotStore reads and writes whole-collection snapshots.
	SnapshotStore interface {
		// ReadSnapshot decodes the snapshot `name` into dst. found is false if there is none yet.
		ReadSnapshot(name string, dst interface{}) (found bool, err error)
		WriteSnapshot(name string, records interface{}) error
	}
)

// InsertOutcome is the result of a remote insert.
type InsertOutcome int

const (
	InsertSucceeded InsertOutcome = iota // rows returned
	InsertFailed                         // error returned
	InsertEmpty                          // no error and no rows
)

func (o InsertOutcome) String() string {
	switch o {
	case InsertSucceeded:
		return "succeeded"
	case InsertFailed:
		return "failed"
	default:
		return "empty"
	}
}

// ClassifyInsert maps the result of RemoteTable.Insert to an InsertOutcome.
func ClassifyInsert[T any](rows []T, err error) InsertOutcome {
	switch {
	case err != nil:
		return InsertFailed
	case len(rows) == 0:
		return InsertEmpty
	default:
		return InsertSucceeded
	}
}
