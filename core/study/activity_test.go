package study_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studyhub/core/study"
	inmemdb "github.com/trezcool/studyhub/storage/database/inmem"
)

func TestStore_quiz(t *testing.T) {
	s := openStore(t, inmemdb.Open(), nil).store

	qs, err := s.CreateQuizSession(study.NewQuizSession{ChapterID: 1, TotalQuestions: 10})
	require.NoError(t, err)
	assert.Equal(t, study.QuizSession{ID: 1, ChapterID: 1, TotalQuestions: 10, CreatedAt: testNow}, qs)

	qs, ok, err := s.UpdateQuizSession(qs.ID, study.UpdateQuizSession{CurrentQuestion: intPtr(3), Score: intPtr(2)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, qs.CurrentQuestion)
	assert.Equal(t, 2, qs.Score)
	assert.False(t, qs.IsCompleted)

	_, ok, err = s.UpdateQuizSession(99, study.UpdateQuizSession{IsCompleted: boolPtr(true)})
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = s.UpdateQuizSession(qs.ID, study.UpdateQuizSession{Score: intPtr(-1)})
	assert.Error(t, err)

	got, ok := s.QuizSession(qs.ID)
	require.True(t, ok)
	assert.Equal(t, qs, got)

	a1, err := s.CreateQuizAnswer(study.NewQuizAnswer{SessionID: 1, QuestionID: 4, SelectedAnswer: intPtr(2), IsCorrect: true, TimeSpent: 12})
	require.NoError(t, err)
	assert.Equal(t, null.IntFrom(2), a1.SelectedAnswer)
	a2, err := s.CreateQuizAnswer(study.NewQuizAnswer{SessionID: 1, QuestionID: 5, TimeSpent: 30})
	require.NoError(t, err)
	assert.False(t, a2.SelectedAnswer.Valid, "skipped question")
	_, err = s.CreateQuizAnswer(study.NewQuizAnswer{SessionID: 2, QuestionID: 5, SelectedAnswer: intPtr(4)})
	assert.Error(t, err)

	assert.Equal(t, []study.QuizAnswer{a1, a2}, s.QuizAnswersBySession(1))
	assert.Empty(t, s.QuizAnswersBySession(2))
}

func TestStore_studySessions(t *testing.T) {
	s := openStore(t, inmemdb.Open(), nil).store

	ss, err := s.CreateStudySession(study.NewStudySession{ChapterID: 2, Duration: 45, QuestionsAttempted: 20, CorrectAnswers: 17})
	require.NoError(t, err)
	assert.Equal(t, testNow, ss.Date)
	_, err = s.CreateStudySession(study.NewStudySession{ChapterID: 3, Duration: 15})
	require.NoError(t, err)

	_, err = s.CreateStudySession(study.NewStudySession{ChapterID: 3, QuestionsAttempted: 2, CorrectAnswers: 5})
	assert.Error(t, err, "more correct answers than attempts")

	assert.Len(t, s.StudySessions(), 2)
	assert.Equal(t, []study.StudySession{ss}, s.StudySessionsByChapter(2))
}

func TestStore_UpdateUserStats(t *testing.T) {
	s := openStore(t, inmemdb.Open(), nil).store

	last := time.Date(2024, 5, 13, 20, 0, 0, 0, time.FixedZone("CAT", 2*60*60))
	stats, err := s.UpdateUserStats(study.UpdateUserStats{StudyStreak: intPtr(13), LastStudyDate: &last})
	require.NoError(t, err)
	assert.Equal(t, 13, stats.StudyStreak)
	assert.Equal(t, 1247, stats.TotalQuestionsSolved)
	assert.Equal(t, time.UTC, stats.LastStudyDate.Location())
	assert.True(t, stats.LastStudyDate.Equal(last))
	assert.Equal(t, stats, s.UserStats())

	_, err = s.UpdateUserStats(study.UpdateUserStats{TotalStudyTimeMinutes: intPtr(-5)})
	assert.Error(t, err)
	assert.Equal(t, 1260, s.UserStats().TotalStudyTimeMinutes)
}

func TestStore_scheduleEvents(t *testing.T) {
	s := openStore(t, inmemdb.Open(), nil).store

	day := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	end := day.Add(11 * time.Hour)
	morning, err := s.CreateScheduleEvent(study.NewScheduleEvent{
		Title:     "Mechanics revision",
		StartTime: day.Add(9 * time.Hour),
		EndTime:   &end,
		Color:     "blue",
	})
	require.NoError(t, err)
	assert.Equal(t, null.TimeFrom(end), morning.EndTime)

	late, err := s.CreateScheduleEvent(study.NewScheduleEvent{Title: "Mock exam", StartTime: day.Add(23 * time.Hour), Color: "red"})
	require.NoError(t, err)
	_, err = s.CreateScheduleEvent(study.NewScheduleEvent{Title: "Genetics", StartTime: day.Add(33 * time.Hour), Color: "green"})
	require.NoError(t, err)

	_, err = s.CreateScheduleEvent(study.NewScheduleEvent{Title: "No start", Color: "green"})
	assert.Error(t, err)

	assert.Len(t, s.ScheduleEvents(), 3)
	assert.Equal(t, []study.ScheduleEvent{morning, late}, s.ScheduleEventsByDate(day.Add(15*time.Hour)))

	// 23:00 UTC is already the next day two hours east
	east := time.FixedZone("CAT", 2*60*60)
	eastDay := s.ScheduleEventsByDate(time.Date(2024, 5, 21, 8, 0, 0, 0, east))
	require.Len(t, eastDay, 2)
	assert.Equal(t, late.ID, eastDay[0].ID)

	ev, ok, err := s.UpdateScheduleEvent(morning.ID, study.UpdateScheduleEvent{IsCompleted: boolPtr(true), Description: strPtr("chapter 1")})
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, ev.IsCompleted)
	assert.Equal(t, "chapter 1", ev.Description.String)
	assert.Equal(t, "Mechanics revision", ev.Title)

	_, ok, err = s.UpdateScheduleEvent(42, study.UpdateScheduleEvent{IsCompleted: boolPtr(true)})
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, s.DeleteScheduleEvent(late.ID))
	assert.False(t, s.DeleteScheduleEvent(late.ID))
	assert.Len(t, s.ScheduleEvents(), 2)
}
