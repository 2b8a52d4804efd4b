package study

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// QuestionRow is the remote shape of a question.
type QuestionRow struct {
	ID            int         `json:"id" db:"id"`
	ChapterID     int         `json:"chapter_id" db:"chapter_id"`
	SubtopicID    null.Int    `json:"subtopic_id" db:"subtopic_id"`
	Question      string      `json:"question" db:"question"`
	OptionA       string      `json:"option_a" db:"option_a"`
	OptionB       string      `json:"option_b" db:"option_b"`
	OptionC       string      `json:"option_c" db:"option_c"`
	OptionD       string      `json:"option_d" db:"option_d"`
	CorrectAnswer string      `json:"correct_answer" db:"correct_answer"`
	Explanation   null.String `json:"explanation" db:"explanation"`
	Difficulty    null.String `json:"difficulty" db:"difficulty"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}

// ToQuestion translates the row into the cached shape.
func (row QuestionRow) ToQuestion() (Question, error) {
	idx, err := ParseAnswerLetter(row.CorrectAnswer)
	if err != nil {
		return Question{}, errors.Wrapf(err, "question row %d", row.ID)
	}
	return Question{
		ID:            row.ID,
		ChapterID:     row.ChapterID,
		SubtopicID:    row.SubtopicID,
		Question:      row.Question,
		Options:       []string{row.OptionA, row.OptionB, row.OptionC, row.OptionD},
		CorrectAnswer: idx,
		Explanation:   row.Explanation,
		Difficulty:    row.Difficulty,
		CreatedAt:     row.CreatedAt,
	}, nil
}

// QuestionRowFrom translates a cached question back into its remote shape.
func QuestionRowFrom(q Question) (QuestionRow, error) {
	letter, err := AnswerLetter(q.CorrectAnswer)
	if err != nil {
		return QuestionRow{}, errors.Wrapf(err, "question %d", q.ID)
	}
	var opts [OptionCount]string
	copy(opts[:], q.Options)
	return QuestionRow{
		ID:            q.ID,
		ChapterID:     q.ChapterID,
		SubtopicID:    q.SubtopicID,
		Question:      q.Question,
		OptionA:       opts[0],
		OptionB:       opts[1],
		OptionC:       opts[2],
		OptionD:       opts[3],
		CorrectAnswer: letter,
		Explanation:   q.Explanation,
		Difficulty:    q.Difficulty,
		CreatedAt:     q.CreatedAt,
	}, nil
}

// Row translates the lettered payload into a remote row stamped with `now`. The row has no ID yet.
func (nq NewQuestion) Row(now time.Time) (QuestionRow, error) {
	idx, err := ParseAnswerLetter(nq.CorrectAnswer)
	if err != nil {
		return QuestionRow{}, err
	}
	return QuestionRow{
		ChapterID:     nq.ChapterID,
		SubtopicID:    null.IntFromPtr(nq.SubtopicID),
		Question:      nq.Question,
		OptionA:       nq.OptionA,
		OptionB:       nq.OptionB,
		OptionC:       nq.OptionC,
		OptionD:       nq.OptionD,
		CorrectAnswer: answerLetters[idx],
		Explanation:   null.StringFromPtr(nq.Explanation),
		Difficulty:    null.StringFromPtr(nq.Difficulty),
		CreatedAt:     now,
	}, nil
}
