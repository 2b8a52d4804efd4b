package study

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studyhub/core"
)

// Quiz sessions & answers

func (s *Store) QuizSession(id int) (QuizSession, bool) {
	return get(s, s.quizSessions, id)
}

func (s *Store) CreateQuizSession(nqs NewQuizSession) (QuizSession, error) {
	if err := s.check(nqs); err != nil {
		return QuizSession{}, err
	}
	return create(s, s.quizSessions, nil, func(id int) QuizSession {
		qs := QuizSession{
			ID:             id,
			ChapterID:      nqs.ChapterID,
			TotalQuestions: nqs.TotalQuestions,
			CreatedAt:      s.now(),
		}
		if nqs.CurrentQuestion != nil {
			qs.CurrentQuestion = *nqs.CurrentQuestion
		}
		if nqs.Score != nil {
			qs.Score = *nqs.Score
		}
		if nqs.IsCompleted != nil {
			qs.IsCompleted = *nqs.IsCompleted
		}
		return qs
	})
}

func (s *Store) UpdateQuizSession(id int, uqs UpdateQuizSession) (QuizSession, bool, error) {
	if err := s.check(uqs); err != nil {
		return QuizSession{}, false, err
	}
	return update(s, s.quizSessions, id, nil, func(qs *QuizSession) {
		if uqs.TotalQuestions != nil {
			qs.TotalQuestions = *uqs.TotalQuestions
		}
		if uqs.CurrentQuestion != nil {
			qs.CurrentQuestion = *uqs.CurrentQuestion
		}
		if uqs.Score != nil {
			qs.Score = *uqs.Score
		}
		if uqs.IsCompleted != nil {
			qs.IsCompleted = *uqs.IsCompleted
		}
	})
}

func (s *Store) QuizAnswersBySession(sessionID int) []QuizAnswer {
	return list(s, s.quizAnswers, func(a QuizAnswer) bool { return a.SessionID == sessionID })
}

func (s *Store) CreateQuizAnswer(nqa NewQuizAnswer) (QuizAnswer, error) {
	if err := s.check(nqa); err != nil {
		return QuizAnswer{}, err
	}
	return create(s, s.quizAnswers, nil, func(id int) QuizAnswer {
		return QuizAnswer{
			ID:             id,
			SessionID:      nqa.SessionID,
			QuestionID:     nqa.QuestionID,
			SelectedAnswer: null.IntFromPtr(nqa.SelectedAnswer),
			IsCorrect:      nqa.IsCorrect,
			TimeSpent:      nqa.TimeSpent,
		}
	})
}

// Study sessions

func (s *Store) StudySessions() []StudySession {
	return list(s, s.studySessions, nil)
}

func (s *Store) StudySessionsByChapter(chapterID int) []StudySession {
	return list(s, s.studySessions, func(ss StudySession) bool { return ss.ChapterID == chapterID })
}

func (s *Store) CreateStudySession(nss NewStudySession) (StudySession, error) {
	if err := s.check(nss); err != nil {
		return StudySession{}, err
	}
	return create(s, s.studySessions, nil, func(id int) StudySession {
		return StudySession{
			ID:                 id,
			ChapterID:          nss.ChapterID,
			Duration:           nss.Duration,
			QuestionsAttempted: nss.QuestionsAttempted,
			CorrectAnswers:     nss.CorrectAnswers,
			Date:               s.now(),
		}
	})
}

// User stats

func (s *Store) UserStats() UserStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// UpdateUserStats merges the set fields of us into the stats. The stats always exist.
func (s *Store) UpdateUserStats(us UpdateUserStats) (UserStats, error) {
	if err := s.check(us); err != nil {
		return UserStats{}, err
	}

	s.mu.Lock()
	if us.TotalQuestionsSolved != nil {
		s.stats.TotalQuestionsSolved = *us.TotalQuestionsSolved
	}
	if us.TotalCorrectAnswers != nil {
		s.stats.TotalCorrectAnswers = *us.TotalCorrectAnswers
	}
	if us.StudyStreak != nil {
		s.stats.StudyStreak = *us.StudyStreak
	}
	if us.LastStudyDate != nil {
		s.stats.LastStudyDate = us.LastStudyDate.UTC()
	}
	if us.TotalStudyTimeMinutes != nil {
		s.stats.TotalStudyTimeMinutes = *us.TotalStudyTimeMinutes
	}
	stats := s.stats
	s.mu.Unlock()

	s.afterWrite(KindUserStats)
	return stats, nil
}

// Schedule events

func (s *Store) ScheduleEvents() []ScheduleEvent {
	return list(s, s.scheduleEvents, nil)
}

// ScheduleEventsByDate returns the events starting on the calendar day of `date`, in the location of `date`.
func (s *Store) ScheduleEventsByDate(date time.Time) []ScheduleEvent {
	y, m, d := date.Date()
	return list(s, s.scheduleEvents, func(ev ScheduleEvent) bool {
		ey, em, ed := ev.StartTime.In(date.Location()).Date()
		return ey == y && em == m && ed == d
	})
}

func (s *Store) CreateScheduleEvent(nse NewScheduleEvent) (ScheduleEvent, error) {
	if err := s.check(nse); err != nil {
		return ScheduleEvent{}, err
	}
	return create(s, s.scheduleEvents, nil, func(id int) ScheduleEvent {
		return ScheduleEvent{
			ID:          id,
			Title:       core.CleanString(nse.Title),
			Description: optString(nse.Description),
			StartTime:   nse.StartTime,
			EndTime:     null.TimeFromPtr(nse.EndTime),
			Color:       nse.Color,
			IsCompleted: nse.IsCompleted,
		}
	})
}

func (s *Store) UpdateScheduleEvent(id int, use UpdateScheduleEvent) (ScheduleEvent, bool, error) {
	if err := s.check(use); err != nil {
		return ScheduleEvent{}, false, err
	}
	return update(s, s.scheduleEvents, id, nil, func(ev *ScheduleEvent) {
		if use.Title != nil {
			ev.Title = core.CleanString(*use.Title)
		}
		if use.Description != nil {
			ev.Description = optString(use.Description)
		}
		if use.StartTime != nil {
			ev.StartTime = *use.StartTime
		}
		if use.EndTime != nil {
			ev.EndTime = null.TimeFrom(*use.EndTime)
		}
		if use.Color != nil {
			ev.Color = *use.Color
		}
		if use.IsCompleted != nil {
			ev.IsCompleted = *use.IsCompleted
		}
	})
}

func (s *Store) DeleteScheduleEvent(id int) bool {
	return remove(s, s.scheduleEvents, id)
}
