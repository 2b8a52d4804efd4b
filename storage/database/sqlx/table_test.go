package sqlxrepos

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

var questionRowColumns = []string{
	"id", "chapter_id", "subtopic_id", "question",
	"option_a", "option_b", "option_c", "option_d",
	"correct_answer", "explanation", "difficulty", "created_at",
}

func setup(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db, nil), mock
}

func TestTable_Select(t *testing.T) {
	repo, mock := setup(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("ordered by creation", func(t *testing.T) {
		rows := sqlmock.NewRows(questionRowColumns).
			AddRow(4, 1, nil, "What is F?", "ma", "mv", "m/a", "a/m", "A", "Newton", nil, now).
			AddRow(9, 1, 3, "What is p?", "ma", "mv", "", "", "B", nil, "easy", now.Add(time.Minute))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "questions" ORDER BY "created_at" ASC`)).
			WillReturnRows(rows)

		got, err := repo.Questions().Select(ctx, nil, core.OrderBy("created_at"))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, study.QuestionRow{
			ID:            4,
			ChapterID:     1,
			Question:      "What is F?",
			OptionA:       "ma",
			OptionB:       "mv",
			OptionC:       "m/a",
			OptionD:       "a/m",
			CorrectAnswer: "A",
			Explanation:   null.StringFrom("Newton"),
			CreatedAt:     now,
		}, got[0])
		assert.Equal(t, null.IntFrom(3), got[1].SubtopicID)
		assert.Equal(t, null.StringFrom("easy"), got[1].Difficulty)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("filtered", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "questions" WHERE "subtopic_id"=$1 ORDER BY "created_at" DESC`)).
			WithArgs(3).
			WillReturnRows(sqlmock.NewRows(questionRowColumns))

		got, err := repo.Questions().Select(ctx, []core.DBFilter{core.Eq("subtopic_id", 3)}, core.OrderBy("-created_at"))
		require.NoError(t, err)
		assert.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := repo.Questions().Select(ctx, []core.DBFilter{core.Eq("1=1; DROP TABLE questions; --", 1)})
		assert.Equal(t, ErrUnknownColumn, errors.Cause(err))

		_, err = repo.Questions().Select(ctx, nil, core.OrderBy("nope"))
		assert.Equal(t, ErrUnknownColumn, errors.Cause(err))
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "messages"`)).WillReturnError(sql.ErrConnDone)

		_, err := repo.Messages().Select(ctx, nil)
		assert.Equal(t, sql.ErrConnDone, errors.Cause(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTable_Insert(t *testing.T) {
	repo, mock := setup(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("bulk", func(t *testing.T) {
		mock.ExpectQuery(
			`INSERT INTO "questions" \("chapter_id","subtopic_id","question","option_a","option_b","option_c","option_d","correct_answer","explanation","difficulty","created_at"\) ` +
				`VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8,\$9,\$10,\$11\),\(\$12,\$13,\$14,\$15,\$16,\$17,\$18,\$19,\$20,\$21,\$22\) RETURNING \*`,
		).
			WithArgs(
				1, nil, "q1", "a", "b", "c", "d", "C", nil, nil, sqlmock.AnyArg(),
				2, 5, "q2", "a", "b", "", "", "A", "because", "hard", sqlmock.AnyArg(),
			).
			WillReturnRows(sqlmock.NewRows(questionRowColumns).
				AddRow(10, 1, nil, "q1", "a", "b", "c", "d", "C", nil, nil, now).
				AddRow(11, 2, 5, "q2", "a", "b", "", "", "A", "because", "hard", now))

		got, err := repo.Questions().Insert(ctx,
			study.QuestionRow{ChapterID: 1, Question: "q1", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "C", CreatedAt: now},
			study.QuestionRow{
				ChapterID: 2, SubtopicID: null.IntFrom(5), Question: "q2", OptionA: "a", OptionB: "b", CorrectAnswer: "A",
				Explanation: null.StringFrom("because"), Difficulty: null.StringFrom("hard"), CreatedAt: now,
			},
		)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 10, got[0].ID)
		assert.Equal(t, 11, got[1].ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing to insert", func(t *testing.T) {
		got, err := repo.Messages().Insert(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "messages" ("text","sender","created_at") VALUES ($1,$2,$3) RETURNING *`)).
			WithArgs("hello", "me", sqlmock.AnyArg()).
			WillReturnError(sql.ErrConnDone)

		_, err := repo.Messages().Insert(ctx, study.Message{Text: "hello", Sender: "me", CreatedAt: now})
		assert.Equal(t, sql.ErrConnDone, errors.Cause(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTable_UpdateAndDelete(t *testing.T) {
	repo, mock := setup(t)
	ctx := context.Background()

	t.Run("update", func(t *testing.T) {
		mock.ExpectExec(`UPDATE "files" SET "name"=\$1,\s?"path"=\$2 WHERE "id"=\$3`).
			WithArgs("b.pdf", "/docs", 7).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Files().Update(ctx, []core.DBFilter{core.Eq("id", 7)}, map[string]interface{}{"path": "/docs", "name": "b.pdf"})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "folders" WHERE "id"=$1`)).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Folders().Delete(ctx, []core.DBFilter{core.Eq("id", 3)}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no filter", func(t *testing.T) {
		err := repo.Folders().Delete(ctx, nil)
		assert.Equal(t, ErrNoFilter, errors.Cause(err))

		err = repo.Files().Update(ctx, nil, map[string]interface{}{"path": "/"})
		assert.Equal(t, ErrNoFilter, errors.Cause(err))
	})

	t.Run("id is read-only", func(t *testing.T) {
		err := repo.Files().Update(ctx, []core.DBFilter{core.Eq("id", 7)}, map[string]interface{}{"id": 8})
		assert.Equal(t, ErrUnknownColumn, errors.Cause(err))
	})
}
