package study

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studyhub/core"
)

type Options struct {
	Remote    RemoteStore
	Snapshots SnapshotStore
	Logger    core.Logger
	Validate  *validator.Validate // NewValidator(core.NewTranslator()) if nil
	Now       func() time.Time    // UTC time.Now if nil
}

// Store is the single entry point to every entity kind.
// It caches everything in memory and mirrors each kind according to Policies.
type Store struct {
	remote    RemoteStore
	snapshots SnapshotStore
	log       core.Logger
	validate  *validator.Validate
	now       func() time.Time

	mu              sync.RWMutex
	subjects        *table[Subject]
	chapters        *table[Chapter]
	subtopics       *table[Subtopic]
	questions       *table[Question]
	quizSessions    *table[QuizSession]
	quizAnswers     *table[QuizAnswer]
	studySessions   *table[StudySession]
	scheduleEvents  *table[ScheduleEvent]
	stats           UserStats
	caches          map[Kind]cache

	persistMu  sync.Mutex
	persisting sync.WaitGroup
}

// Open builds the Store and initializes it before returning:
// snapshots are loaded, default subjects & chapters seeded, then remote questions loaded.
// A remote failure is logged and leaves the question cache empty.
func Open(ctx context.Context, opts Options) (*Store, error) {
	err := vala.BeginValidation().Validate(
		vala.IsNotNil(opts.Remote, "Remote"),
		vala.IsNotNil(opts.Snapshots, "Snapshots"),
		vala.IsNotNil(opts.Logger, "Logger"),
	).Check()
	if err != nil {
		return nil, errors.Wrap(err, "opening study store")
	}

	s := newStore(opts)
	s.loadSnapshots()
	if s.seed() {
		s.persist()
	}
	s.loadQuestions(ctx)
	return s, nil
}

func newStore(opts Options) *Store {
	s := &Store{
		remote:         opts.Remote,
		snapshots:      opts.Snapshots,
		log:            opts.Logger,
		validate:       opts.Validate,
		now:            opts.Now,
		subjects:       newTable(KindSubject, func(r Subject) int { return r.ID }),
		chapters:       newTable(KindChapter, func(r Chapter) int { return r.ID }),
		subtopics:      newTable(KindSubtopic, func(r Subtopic) int { return r.ID }),
		questions:      newTable(KindQuestion, func(r Question) int { return r.ID }),
		quizSessions:   newTable(KindQuizSession, func(r QuizSession) int { return r.ID }),
		quizAnswers:    newTable(KindQuizAnswer, func(r QuizAnswer) int { return r.ID }),
		studySessions:  newTable(KindStudySession, func(r StudySession) int { return r.ID }),
		scheduleEvents: newTable(KindScheduleEvent, func(r ScheduleEvent) int { return r.ID }),
	}
	if s.validate == nil {
		s.validate = NewValidator(core.NewTranslator())
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	s.stats = defaultUserStats(s.now())
	s.caches = map[Kind]cache{
		KindSubject:       s.subjects,
		KindChapter:       s.chapters,
		KindSubtopic:      s.subtopics,
		KindQuestion:      s.questions,
		KindQuizSession:   s.quizSessions,
		KindQuizAnswer:    s.quizAnswers,
		KindStudySession:  s.studySessions,
		KindScheduleEvent: s.scheduleEvents,
	}
	return s
}

func (s *Store) loadSnapshots() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, kind := range KindsWith(PolicyLocalFile) {
		c, ok := s.caches[kind]
		if !ok {
			continue
		}
		found, err := c.restore(s.snapshots)
		switch {
		case err != nil:
			s.log.Error(fmt.Sprintf("loading %s snapshot", kind), err)
		case found:
			s.log.Info(fmt.Sprintf("loaded %s snapshot", kind))
		}
	}
}

func (s *Store) loadQuestions(ctx context.Context) {
	rows, err := s.remote.Questions().Select(ctx, nil, core.OrderBy("created_at"))
	if err != nil {
		s.log.Error("loading questions from remote store", err)
		return
	}

	s.mu.Lock()
	for _, row := range rows {
		q, err := row.ToQuestion()
		if err != nil {
			s.log.Warn("skipping remote question", err)
			continue
		}
		s.putQuestionLocked(q)
	}
	changed := s.reconcileLocked()
	s.mu.Unlock()

	s.log.Info(fmt.Sprintf("loaded %d questions from remote store", len(rows)))
	if changed > 0 {
		s.afterWrite(KindChapter)
	}
}

// afterWrite applies the persistence policy of the written kinds.
// Remote kinds are written through before caching so only LocalFile needs work here.
func (s *Store) afterWrite(kinds ...Kind) {
	for _, kind := range kinds {
		if PolicyOf(kind) == PolicyLocalFile {
			s.persisting.Add(1)
			go func() {
				defer s.persisting.Done()
				s.persist()
			}()
			return
		}
	}
}

// persist writes a snapshot of every LocalFile kind. Failures are logged.
// Writers are serialized and read the cache once they hold persistMu, so the last one writes the newest state.
func (s *Store) persist() {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	kinds := KindsWith(PolicyLocalFile)
	snapshots := make(map[Kind]interface{}, len(kinds))
	s.mu.RLock()
	for _, kind := range kinds {
		if c, ok := s.caches[kind]; ok {
			snapshots[kind] = c.snapshot()
		}
	}
	s.mu.RUnlock()

	for _, kind := range kinds {
		records, ok := snapshots[kind]
		if !ok {
			continue
		}
		if err := s.snapshots.WriteSnapshot(kind.String(), records); err != nil {
			s.log.Error(fmt.Sprintf("writing %s snapshot", kind), err)
		}
	}
}

// Flush waits for the pending snapshot writes.
func (s *Store) Flush() {
	s.persisting.Wait()
}

// Close flushes the pending snapshot writes.
func (s *Store) Close() error {
	s.Flush()
	return nil
}

func (s *Store) check(input interface{}) error {
	return s.validate.Struct(input)
}

// Generic cache operations. All of them lock s.mu and release it before afterWrite.

func get[T any](s *Store, t *table[T], id int) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return t.get(id)
}

func list[T any](s *Store, t *table[T], keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return t.list(keep)
}

// create stores build(id) under the next id of t, unless check fails. check runs under the lock.
func create[T any](s *Store, t *table[T], check func() error, build func(id int) T) (T, error) {
	s.mu.Lock()
	if check != nil {
		if err := check(); err != nil {
			s.mu.Unlock()
			var zero T
			return zero, err
		}
	}
	r := build(t.reserve())
	t.put(r)
	s.mu.Unlock()

	s.afterWrite(t.kind)
	return r, nil
}

// update merges into the record `id`, unless check fails. ok is false if there is no such record.
func update[T any](s *Store, t *table[T], id int, check func() error, merge func(*T)) (r T, ok bool, err error) {
	s.mu.Lock()
	r, ok = t.get(id)
	if ok && check != nil {
		err = check()
	}
	if ok && err == nil {
		merge(&r)
		t.put(r)
	}
	s.mu.Unlock()

	if err != nil {
		var zero T
		return zero, ok, err
	}
	if ok {
		s.afterWrite(t.kind)
	}
	return r, ok, nil
}

func remove[T any](s *Store, t *table[T], id int) bool {
	s.mu.Lock()
	ok := t.remove(id)
	s.mu.Unlock()

	if ok {
		s.afterWrite(t.kind)
	}
	return ok
}

// optString maps a missing or blank optional text to null.
func optString(s *string) null.String {
	if s == nil {
		return null.String{}
	}
	c := core.CleanString(*s)
	if c == "" {
		return null.String{}
	}
	return null.StringFrom(c)
}
