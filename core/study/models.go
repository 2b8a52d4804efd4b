package study

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Subject struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Chapter struct {
	ID                 int         `json:"id"`
	Title              string      `json:"title"`
	Description        null.String `json:"description"`
	SubjectID          int         `json:"subjectId"`
	TotalQuestions     int         `json:"totalQuestions"`
	CompletedQuestions int         `json:"completedQuestions"`
	CreatedAt          time.Time   `json:"createdAt"`
}

type Subtopic struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Description null.String `json:"description"`
	ChapterID   int         `json:"chapterId"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Question is the cached shape: Options always holds 4 entries and CorrectAnswer indexes them.
type Question struct {
	ID            int         `json:"id"`
	ChapterID     int         `json:"chapterId"`
	SubtopicID    null.Int    `json:"subtopicId"`
	Question      string      `json:"question"`
	Options       []string    `json:"options"`
	CorrectAnswer int         `json:"correctAnswer"`
	Explanation   null.String `json:"explanation"`
	Difficulty    null.String `json:"difficulty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type QuizSession struct {
	ID              int       `json:"id"`
	ChapterID       int       `json:"chapterId"`
	TotalQuestions  int       `json:"totalQuestions"`
	CurrentQuestion int       `json:"currentQuestion"`
	Score           int       `json:"score"`
	IsCompleted     bool      `json:"isCompleted"`
	CreatedAt       time.Time `json:"createdAt"`
}

type QuizAnswer struct {
	ID             int      `json:"id"`
	SessionID      int      `json:"sessionId"`
	QuestionID     int      `json:"questionId"`
	SelectedAnswer null.Int `json:"selectedAnswer"`
	IsCorrect      bool     `json:"isCorrect"`
	TimeSpent      int      `json:"timeSpent"` // seconds
}

type StudySession struct {
	ID                 int       `json:"id"`
	ChapterID          int       `json:"chapterId"`
	Duration           int       `json:"duration"` // minutes
	QuestionsAttempted int       `json:"questionsAttempted"`
	CorrectAnswers     int       `json:"correctAnswers"`
	Date               time.Time `json:"date"`
}

// UserStats is a singleton, its ID is always 1.
type UserStats struct {
	ID                    int       `json:"id"`
	TotalQuestionsSolved  int       `json:"totalQuestionsSolved"`
	TotalCorrectAnswers   int       `json:"totalCorrectAnswers"`
	StudyStreak           int       `json:"studyStreak"`
	LastStudyDate         time.Time `json:"lastStudyDate"`
	TotalStudyTimeMinutes int       `json:"totalStudyTimeMinutes"`
}

type ScheduleEvent struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Description null.String `json:"description"`
	StartTime   time.Time   `json:"startTime"`
	EndTime     null.Time   `json:"endTime"`
	Color       string      `json:"color"`
	IsCompleted bool        `json:"isCompleted"`
}

// Remote-only records are served in their row shape.
type (
	Message struct {
		ID        int       `json:"id" db:"id"`
		Text      string    `json:"text" db:"text"`
		Sender    string    `json:"sender" db:"sender"`
		CreatedAt time.Time `json:"created_at" db:"created_at"`
	}

	File struct {
		ID        int       `json:"id" db:"id"`
		Name      string    `json:"name" db:"name"`
		Type      string    `json:"type" db:"type"`
		Size      int64     `json:"size" db:"size"`
		Path      string    `json:"path" db:"path"`
		CreatedAt time.Time `json:"created_at" db:"created_at"`
	}

	Folder struct {
		ID        int       `json:"id" db:"id"`
		Name      string    `json:"name" db:"name"`
		Path      string    `json:"path" db:"path"`
		CreatedAt time.Time `json:"created_at" db:"created_at"`
	}
)

// Create inputs

type (
	NewSubject struct {
		Name  string `json:"name" validate:"required,notblank"`
		Color string `json:"color" validate:"required,color"`
	}

	NewChapter struct {
		Title       string  `json:"title" validate:"required,notblank"`
		Description *string `json:"description"`
		SubjectID   int     `json:"subjectId" validate:"required,gt=0"`
	}

	NewSubtopic struct {
		Title       string  `json:"title" validate:"required,notblank"`
		Description *string `json:"description"`
		ChapterID   int     `json:"chapterId" validate:"required,gt=0"`
	}

	// NewQuestion is the lettered create payload. Missing optionB..D are stored as "".
	NewQuestion struct {
		Question      string  `json:"question" validate:"required,notblank"`
		OptionA       string  `json:"optionA" validate:"required"`
		OptionB       string  `json:"optionB"`
		OptionC       string  `json:"optionC"`
		OptionD       string  `json:"optionD"`
		CorrectAnswer string  `json:"correctAnswer" validate:"required,answerletter"`
		Explanation   *string `json:"explanation"`
		Difficulty    *string `json:"difficulty" validate:"omitempty,notblank"`
		ChapterID     int     `json:"chapterId" validate:"required,gt=0"`
		SubtopicID    *int    `json:"subtopicId" validate:"omitempty,gt=0"`
	}

	NewQuizSession struct {
		ChapterID       int   `json:"chapterId" validate:"required,gt=0"`
		TotalQuestions  int   `json:"totalQuestions" validate:"gte=0"`
		CurrentQuestion *int  `json:"currentQuestion" validate:"omitempty,gte=0"`
		Score           *int  `json:"score" validate:"omitempty,gte=0"`
		IsCompleted     *bool `json:"isCompleted"`
	}

	NewQuizAnswer struct {
		SessionID      int  `json:"sessionId" validate:"required,gt=0"`
		QuestionID     int  `json:"questionId" validate:"required,gt=0"`
		SelectedAnswer *int `json:"selectedAnswer" validate:"omitempty,gte=0,lte=3"`
		IsCorrect      bool `json:"isCorrect"`
		TimeSpent      int  `json:"timeSpent" validate:"gte=0"`
	}

	NewStudySession struct {
		ChapterID          int `json:"chapterId" validate:"required,gt=0"`
		Duration           int `json:"duration" validate:"gte=0"`
		QuestionsAttempted int `json:"questionsAttempted" validate:"gte=0"`
		CorrectAnswers     int `json:"correctAnswers" validate:"gte=0,ltefield=QuestionsAttempted"`
	}

	NewScheduleEvent struct {
		Title       string     `json:"title" validate:"required,notblank"`
		Description *string    `json:"description"`
		StartTime   time.Time  `json:"startTime" validate:"required"`
		EndTime     *time.Time `json:"endTime"`
		Color       string     `json:"color" validate:"required,notblank"`
		IsCompleted bool       `json:"isCompleted"`
	}

	NewMessage struct {
		Text   string `json:"text" validate:"required,notblank"`
		Sender string `json:"sender" validate:"required,notblank"`
	}

	NewFile struct {
		Name string `json:"name" validate:"required,notblank"`
		Type string `json:"type" validate:"required"`
		Size int64  `json:"size" validate:"gte=0"`
		Path string `json:"path" validate:"required"`
	}

	NewFolder struct {
		Name string `json:"name" validate:"required,notblank"`
		Path string `json:"path" validate:"required"`
	}
)

// Partial updates: nil fields are left untouched.

type (
	UpdateChapter struct {
		Title              *string `json:"title" validate:"omitempty,notblank"`
		Description        *string `json:"description"`
		SubjectID          *int    `json:"subjectId" validate:"omitempty,gt=0"`
		TotalQuestions     *int    `json:"totalQuestions" validate:"omitempty,gte=0"`
		CompletedQuestions *int    `json:"completedQuestions" validate:"omitempty,gte=0"`
	}

	UpdateQuizSession struct {
		TotalQuestions  *int  `json:"totalQuestions" validate:"omitempty,gte=0"`
		CurrentQuestion *int  `json:"currentQuestion" validate:"omitempty,gte=0"`
		Score           *int  `json:"score" validate:"omitempty,gte=0"`
		IsCompleted     *bool `json:"isCompleted"`
	}

	UpdateUserStats struct {
		TotalQuestionsSolved  *int       `json:"totalQuestionsSolved" validate:"omitempty,gte=0"`
		TotalCorrectAnswers   *int       `json:"totalCorrectAnswers" validate:"omitempty,gte=0"`
		StudyStreak           *int       `json:"studyStreak" validate:"omitempty,gte=0"`
		LastStudyDate         *time.Time `json:"lastStudyDate"`
		TotalStudyTimeMinutes *int       `json:"totalStudyTimeMinutes" validate:"omitempty,gte=0"`
	}

	UpdateScheduleEvent struct {
		Title       *string    `json:"title" validate:"omitempty,notblank"`
		Description *string    `json:"description"`
		StartTime   *time.Time `json:"startTime"`
		EndTime     *time.Time `json:"endTime"`
		Color       *string    `json:"color" validate:"omitempty,notblank"`
		IsCompleted *bool      `json:"isCompleted"`
	}
)
