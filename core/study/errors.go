package study

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core"
)

var (
	ErrEmptyInsert     = errors.New("remote insert returned no rows")
	ErrSubjectNotFound = errors.New("subject not found")
)

// MissingChaptersError rejects a write referencing chapters that do not exist.
type MissingChaptersError struct {
	IDs []int // deduplicated, in first-seen order
}

func (err *MissingChaptersError) Error() string {
	ids := make([]string, len(err.IDs))
	for i, id := range err.IDs {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf(
		"Chapter(s) with ID(s) %s not found. Please create the chapter first.",
		strings.Join(ids, ", "),
	)
}

// IncompleteInsertError reports a bulk insert whose remote result is missing questions.
// Created holds the questions that were stored.
type IncompleteInsertError struct {
	Sent    int
	Created []Question
}

func (err *IncompleteInsertError) Error() string {
	return fmt.Sprintf(
		"%d of %d questions were not returned by the remote store",
		err.Sent-len(err.Created), err.Sent,
	)
}

func newMissingChaptersError(ids []int) *MissingChaptersError {
	seen := make(map[int]bool, len(ids))
	uniq := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	return &MissingChaptersError{IDs: uniq}
}

func fieldError(err error, field string) error {
	return core.NewValidationError(err, core.FieldError{Field: field, Error: errors.Cause(err).Error()})
}
