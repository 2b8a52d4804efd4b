package study_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
	filestore "github.com/trezcool/studyhub/storage/files"
)

var testNow = time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)

// memLogger records every entry as "LEVEL msg".
type memLogger struct {
	mu      sync.Mutex
	entries []string
}

var _ core.Logger = (*memLogger)(nil)

func (l *memLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintf("%s %s", level, msg))
}

func (l *memLogger) Debug(msg string, _ ...interface{}) { l.add("DEBUG", msg) }
func (l *memLogger) Info(msg string, _ ...interface{})  { l.add("INFO", msg) }
func (l *memLogger) Warn(msg string, _ ...interface{})  { l.add("WARN", msg) }
func (l *memLogger) Error(msg string, _ ...interface{}) { l.add("ERROR", msg) }
func (l *memLogger) Fatal(msg string, _ ...interface{}) { l.add("FATAL", msg) }

// has reports whether an entry starting with prefix was logged.
func (l *memLogger) has(prefix string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if strings.HasPrefix(e, prefix) {
			return true
		}
	}
	return false
}

type testEnv struct {
	store     *study.Store
	snapshots *filestore.SnapshotStore
	logger    *memLogger
}

func openStore(t *testing.T, remote study.RemoteStore, snapshots *filestore.SnapshotStore) testEnv {
	t.Helper()
	if snapshots == nil {
		snapshots = filestore.NewSnapshotStore(t.TempDir())
	}
	logger := new(memLogger)
	store, err := study.Open(context.Background(), study.Options{
		Remote:    remote,
		Snapshots: snapshots,
		Logger:    logger,
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return testEnv{store: store, snapshots: snapshots, logger: logger}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func newQuestion(chapterID int, answer string) study.NewQuestion {
	return study.NewQuestion{
		Question:      fmt.Sprintf("question for chapter %d", chapterID),
		OptionA:       "first",
		OptionB:       "second",
		OptionC:       "third",
		OptionD:       "fourth",
		CorrectAnswer: answer,
		ChapterID:     chapterID,
	}
}
