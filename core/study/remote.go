package study

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core"
)

// selectRows lists the remote rows matching filters, oldest first. It returns an empty list on failure.
func selectRows[T any](ctx context.Context, s *Store, kind Kind, t RemoteTable[T], filters ...core.DBFilter) []T {
	rows, err := t.Select(ctx, filters, core.OrderBy("created_at"))
	if err != nil {
		s.log.Error(fmt.Sprintf("getting %s from remote store", kind), err)
		return []T{}
	}
	if rows == nil {
		return []T{}
	}
	return rows
}

// insertRow inserts a single row and returns it as stored remotely.
func insertRow[T any](ctx context.Context, kind Kind, t RemoteTable[T], row T) (T, error) {
	var zero T
	rows, err := t.Insert(ctx, row)
	switch ClassifyInsert(rows, err) {
	case InsertFailed:
		return zero, errors.Wrapf(err, "inserting %s", kind)
	case InsertEmpty:
		return zero, errors.Wrapf(ErrEmptyInsert, "inserting %s", kind)
	}
	return rows[0], nil
}

// deleteRow reports whether the remote store deleted the row `id` without error.
func deleteRow[T any](ctx context.Context, s *Store, kind Kind, t RemoteTable[T], id int) bool {
	if err := t.Delete(ctx, []core.DBFilter{core.Eq("id", id)}); err != nil {
		s.log.Error(fmt.Sprintf("deleting %s %d from remote store", kind, id), err)
		return false
	}
	return true
}

// Messages

func (s *Store) Messages(ctx context.Context) []Message {
	return selectRows(ctx, s, KindMessage, s.remote.Messages())
}

func (s *Store) CreateMessage(ctx context.Context, nm NewMessage) (Message, error) {
	if err := s.check(nm); err != nil {
		return Message{}, err
	}
	return insertRow(ctx, KindMessage, s.remote.Messages(), Message{
		Text:      core.CleanString(nm.Text),
		Sender:    core.CleanString(nm.Sender),
		CreatedAt: s.now(),
	})
}

// Files & folders

func (s *Store) Files(ctx context.Context) []File {
	return selectRows(ctx, s, KindFile, s.remote.Files())
}

func (s *Store) CreateFile(ctx context.Context, nf NewFile) (File, error) {
	if err := s.check(nf); err != nil {
		return File{}, err
	}
	return insertRow(ctx, KindFile, s.remote.Files(), File{
		Name:      core.CleanString(nf.Name),
		Type:      nf.Type,
		Size:      nf.Size,
		Path:      nf.Path,
		CreatedAt: s.now(),
	})
}

func (s *Store) DeleteFile(ctx context.Context, id int) bool {
	return deleteRow(ctx, s, KindFile, s.remote.Files(), id)
}

func (s *Store) Folders(ctx context.Context) []Folder {
	return selectRows(ctx, s, KindFolder, s.remote.Folders())
}

func (s *Store) CreateFolder(ctx context.Context, nf NewFolder) (Folder, error) {
	if err := s.check(nf); err != nil {
		return Folder{}, err
	}
	return insertRow(ctx, KindFolder, s.remote.Folders(), Folder{
		Name:      core.CleanString(nf.Name),
		Path:      nf.Path,
		CreatedAt: s.now(),
	})
}

func (s *Store) DeleteFolder(ctx context.Context, id int) bool {
	return deleteRow(ctx, s, KindFolder, s.remote.Folders(), id)
}
