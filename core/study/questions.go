package study

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core"
)

func (s *Store) QuestionsByChapter(chapterID int) []Question {
	return list(s, s.questions, func(q Question) bool { return q.ChapterID == chapterID })
}

func (s *Store) Question(id int) (Question, bool) {
	return get(s, s.questions, id)
}

// QuestionsBySubtopic reads the remote store directly. It returns an empty list on failure.
func (s *Store) QuestionsBySubtopic(ctx context.Context, subtopicID int) []Question {
	rows := selectRows(ctx, s, KindQuestion, s.remote.Questions(), core.Eq("subtopic_id", subtopicID))
	questions := make([]Question, 0, len(rows))
	for _, row := range rows {
		q, err := row.ToQuestion()
		if err != nil {
			s.log.Warn("skipping remote question", err)
			continue
		}
		questions = append(questions, q)
	}
	return questions
}

// prepareQuestions validates the payloads and translates them into remote rows.
func (s *Store) prepareQuestions(nqs []NewQuestion) ([]QuestionRow, error) {
	now := s.now()
	rows := make([]QuestionRow, len(nqs))
	for i, nq := range nqs {
		if err := s.check(nq); err != nil {
			if len(nqs) > 1 {
				return nil, errors.Wrapf(err, "question %d", i+1)
			}
			return nil, err
		}
		row, err := nq.Row(now)
		if err != nil {
			return nil, fieldError(err, "correctAnswer")
		}
		rows[i] = row
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var missing []int
	for _, row := range rows {
		if _, ok := s.chapters.get(row.ChapterID); !ok {
			missing = append(missing, row.ChapterID)
		}
	}
	if len(missing) > 0 {
		return nil, newMissingChaptersError(missing)
	}
	return rows, nil
}

// CreateQuestion stores the question remotely, then caches it under the remote id.
// There is no local fallback: a remote failure or an empty insert is returned.
func (s *Store) CreateQuestion(ctx context.Context, nq NewQuestion) (Question, error) {
	rows, err := s.prepareQuestions([]NewQuestion{nq})
	if err != nil {
		return Question{}, err
	}

	row, err := insertRow(ctx, KindQuestion, s.remote.Questions(), rows[0])
	if err != nil {
		return Question{}, err
	}
	q, err := row.ToQuestion()
	if err != nil {
		return Question{}, errors.Wrap(err, "translating inserted question")
	}

	s.mu.Lock()
	s.putQuestionLocked(q)
	s.questionsAddedLocked(map[int]int{q.ChapterID: 1})
	s.mu.Unlock()

	s.afterWrite(KindQuestion, KindChapter)
	return q, nil
}

// CreateBulkQuestions stores the questions with one remote insert.
// Every referenced chapter must exist, otherwise a *MissingChaptersError is returned before anything is stored.
// If the remote insert fails or returns no rows, the questions are stored locally under local ids.
// If it returns fewer usable rows than were sent, the usable ones are cached and an *IncompleteInsertError is returned.
func (s *Store) CreateBulkQuestions(ctx context.Context, nqs []NewQuestion) ([]Question, error) {
	if len(nqs) == 0 {
		return []Question{}, nil
	}
	rows, err := s.prepareQuestions(nqs)
	if err != nil {
		return nil, err
	}

	inserted, err := s.remote.Questions().Insert(ctx, rows...)
	outcome := ClassifyInsert(inserted, err)
	switch outcome {
	case InsertSucceeded:
		s.log.Info(fmt.Sprintf("saved %d questions remotely", len(inserted)))
	case InsertFailed:
		s.log.Warn("remote insert failed, saving questions locally", err)
	case InsertEmpty:
		s.log.Warn("remote insert returned no rows, saving questions locally")
	}

	created := make([]Question, 0, len(rows))
	added := make(map[int]int)

	s.mu.Lock()
	if outcome == InsertSucceeded {
		for _, row := range inserted {
			q, err := row.ToQuestion()
			if err != nil {
				s.log.Warn("skipping inserted question", err)
				continue
			}
			s.putQuestionLocked(q)
			created = append(created, q)
			added[q.ChapterID]++
		}
	} else {
		for _, row := range rows {
			row.ID = s.questions.reserve()
			q, _ := row.ToQuestion() // rows were built from valid letters
			s.questions.put(q)
			created = append(created, q)
			added[q.ChapterID]++
		}
	}
	s.questionsAddedLocked(added)
	s.mu.Unlock()

	s.afterWrite(KindQuestion, KindChapter)

	if len(created) < len(rows) {
		err := &IncompleteInsertError{Sent: len(rows), Created: created}
		s.log.Error("remote insert lost questions", err)
		return created, err
	}
	return created, nil
}

// questionsAddedLocked raises the totals of the chapters that received questions by the number they received.
// Must be called with s.mu held.
func (s *Store) questionsAddedLocked(added map[int]int) {
	for id, n := range added {
		if ch, ok := s.chapters.get(id); ok {
			ch.TotalQuestions += n
			s.chapters.put(ch)
		}
	}
}

// putQuestionLocked caches q. Local ids given after a failed remote insert may later be
// assigned by the remote store too: the cached question is then replaced, with a warning.
// Must be called with s.mu held.
func (s *Store) putQuestionLocked(q Question) {
	if prev, ok := s.questions.get(q.ID); ok {
		s.log.Warn(fmt.Sprintf("replacing cached question %d", q.ID), map[string]interface{}{
			"chapter_id":          q.ChapterID,
			"replaced_chapter_id": prev.ChapterID,
		})
	}
	s.questions.put(q)
}

// reconcileLocked sets every Chapter.TotalQuestions to the number of cached questions of the chapter.
// It returns the number of chapters changed. Must be called with s.mu held.
func (s *Store) reconcileLocked() int {
	counts := make(map[int]int, s.chapters.len())
	for _, q := range s.questions.rows {
		counts[q.ChapterID]++
	}

	var changed int
	for _, ch := range s.chapters.list(nil) {
		if ch.TotalQuestions != counts[ch.ID] {
			ch.TotalQuestions = counts[ch.ID]
			s.chapters.put(ch)
			changed++
		}
	}
	return changed
}

// ReconcileChapterTotals recounts Chapter.TotalQuestions from the cached questions.
// It returns the number of chapters whose total changed.
func (s *Store) ReconcileChapterTotals() int {
	s.mu.Lock()
	changed := s.reconcileLocked()
	s.mu.Unlock()

	if changed > 0 {
		s.afterWrite(KindChapter)
	}
	return changed
}
