package study

import (
	"time"

	"github.com/volatiletech/null/v8"
)

var (
	defaultSubjects = []Subject{
		{ID: 1, Name: "Physics", Color: "blue"},
		{ID: 2, Name: "Chemistry", Color: "green"},
		{ID: 3, Name: "Biology", Color: "purple"},
	}

	defaultChapters = []Chapter{
		{ID: 1, Title: "Mechanics", Description: null.StringFrom("Laws of motion and forces"), SubjectID: 1},
		{ID: 2, Title: "Thermodynamics", Description: null.StringFrom("Heat and energy transfer"), SubjectID: 1},
		{ID: 3, Title: "Atomic Structure", Description: null.StringFrom("Structure of atoms and molecules"), SubjectID: 2},
		{ID: 4, Title: "Chemical Bonding", Description: null.StringFrom("Types of chemical bonds"), SubjectID: 2},
		{ID: 5, Title: "Cell Biology", Description: null.StringFrom("Structure and function of cells"), SubjectID: 3},
		{ID: 6, Title: "Genetics", Description: null.StringFrom("Heredity and genetic variation"), SubjectID: 3},
	}
)

func defaultUserStats(now time.Time) UserStats {
	return UserStats{
		ID:                    1,
		TotalQuestionsSolved:  1247,
		TotalCorrectAnswers:   1085,
		StudyStreak:           12,
		LastStudyDate:         now,
		TotalStudyTimeMinutes: 1260,
	}
}

// seed fills the empty subject and chapter caches with the defaults. It reports whether anything was seeded.
func (s *Store) seed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var seeded bool
	if s.subjects.len() == 0 {
		for _, subj := range defaultSubjects {
			s.subjects.put(subj)
		}
		seeded = true
		s.log.Info("seeded default subjects")
	}
	if s.chapters.len() == 0 {
		now := s.now()
		for _, ch := range defaultChapters {
			ch.CreatedAt = now
			s.chapters.put(ch)
		}
		seeded = true
		s.log.Info("seeded default chapters")
	}
	return seeded
}
