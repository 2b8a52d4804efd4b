package study

import (
	"github.com/trezcool/studyhub/core"
)

// Subjects

func (s *Store) Subjects() []Subject {
	return list(s, s.subjects, nil)
}

func (s *Store) Subject(id int) (Subject, bool) {
	return get(s, s.subjects, id)
}

func (s *Store) CreateSubject(ns NewSubject) (Subject, error) {
	if err := s.check(ns); err != nil {
		return Subject{}, err
	}
	return create(s, s.subjects, nil, func(id int) Subject {
		return Subject{
			ID:    id,
			Name:  core.CleanString(ns.Name),
			Color: ns.Color,
		}
	})
}

// Chapters

func (s *Store) Chapters() []Chapter {
	return list(s, s.chapters, nil)
}

func (s *Store) ChaptersBySubject(subjectID int) []Chapter {
	return list(s, s.chapters, func(ch Chapter) bool { return ch.SubjectID == subjectID })
}

func (s *Store) Chapter(id int) (Chapter, bool) {
	return get(s, s.chapters, id)
}

// subjectExists must be called with s.mu held.
func (s *Store) subjectExists(id int) error {
	if _, ok := s.subjects.get(id); !ok {
		return fieldError(ErrSubjectNotFound, "subjectId")
	}
	return nil
}

func (s *Store) CreateChapter(nc NewChapter) (Chapter, error) {
	if err := s.check(nc); err != nil {
		return Chapter{}, err
	}
	return create(
		s, s.chapters,
		func() error { return s.subjectExists(nc.SubjectID) },
		func(id int) Chapter {
			return Chapter{
				ID:          id,
				Title:       core.CleanString(nc.Title),
				Description: optString(nc.Description),
				SubjectID:   nc.SubjectID,
				CreatedAt:   s.now(),
			}
		},
	)
}

// UpdateChapter merges the set fields of uc into the chapter `id`. ok is false if there is no such chapter.
func (s *Store) UpdateChapter(id int, uc UpdateChapter) (ch Chapter, ok bool, err error) {
	if err = s.check(uc); err != nil {
		return Chapter{}, false, err
	}
	var check func() error
	if uc.SubjectID != nil {
		check = func() error { return s.subjectExists(*uc.SubjectID) }
	}
	return update(s, s.chapters, id, check, func(ch *Chapter) {
		if uc.Title != nil {
			ch.Title = core.CleanString(*uc.Title)
		}
		if uc.Description != nil {
			ch.Description = optString(uc.Description)
		}
		if uc.SubjectID != nil {
			ch.SubjectID = *uc.SubjectID
		}
		if uc.TotalQuestions != nil {
			ch.TotalQuestions = *uc.TotalQuestions
		}
		if uc.CompletedQuestions != nil {
			ch.CompletedQuestions = *uc.CompletedQuestions
		}
	})
}

// DeleteChapter removes the chapter from the cache. Its questions are left untouched.
func (s *Store) DeleteChapter(id int) bool {
	return remove(s, s.chapters, id)
}

// Subtopics

func (s *Store) SubtopicsByChapter(chapterID int) []Subtopic {
	return list(s, s.subtopics, func(st Subtopic) bool { return st.ChapterID == chapterID })
}

func (s *Store) CreateSubtopic(ns NewSubtopic) (Subtopic, error) {
	if err := s.check(ns); err != nil {
		return Subtopic{}, err
	}
	return create(
		s, s.subtopics,
		func() error {
			if _, ok := s.chapters.get(ns.ChapterID); !ok {
				return newMissingChaptersError([]int{ns.ChapterID})
			}
			return nil
		},
		func(id int) Subtopic {
			return Subtopic{
				ID:          id,
				Title:       core.CleanString(ns.Title),
				Description: optString(ns.Description),
				ChapterID:   ns.ChapterID,
				CreatedAt:   s.now(),
			}
		},
	)
}

func (s *Store) DeleteSubtopic(id int) bool {
	return remove(s, s.subtopics, id)
}
