package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

var (
	questionColumns = []string{
		"chapter_id", "subtopic_id", "question",
		"option_a", "option_b", "option_c", "option_d",
		"correct_answer", "explanation", "difficulty", "created_at",
	}
	messageColumns = []string{"text", "sender", "created_at"}
	fileColumns    = []string{"name", "type", "size", "path", "created_at"}
	folderColumns  = []string{"name", "path", "created_at"}
)

// DB is the Postgres remote store.
type DB struct {
	questions *Table[study.QuestionRow]
	messages  *Table[study.Message]
	files     *Table[study.File]
	folders   *Table[study.Folder]
}

var _ study.RemoteStore = (*DB)(nil) // interface compliance check

// New wraps an opened lib/pq connection pool. logger receives every query at debug level.
func New(db *sql.DB, logger core.Logger) *DB {
	xdb := sqlx.NewDb(db, "postgres")
	return &DB{
		questions: NewTable(xdb, logger, study.KindQuestion.String(), questionColumns, func(r study.QuestionRow) []interface{} {
			return []interface{}{
				r.ChapterID, r.SubtopicID, r.Question,
				r.OptionA, r.OptionB, r.OptionC, r.OptionD,
				r.CorrectAnswer, r.Explanation, r.Difficulty, r.CreatedAt,
			}
		}),
		messages: NewTable(xdb, logger, study.KindMessage.String(), messageColumns, func(r study.Message) []interface{} {
			return []interface{}{r.Text, r.Sender, r.CreatedAt}
		}),
		files: NewTable(xdb, logger, study.KindFile.String(), fileColumns, func(r study.File) []interface{} {
			return []interface{}{r.Name, r.Type, r.Size, r.Path, r.CreatedAt}
		}),
		folders: NewTable(xdb, logger, study.KindFolder.String(), folderColumns, func(r study.Folder) []interface{} {
			return []interface{}{r.Name, r.Path, r.CreatedAt}
		}),
	}
}

func (db *DB) Questions() study.RemoteTable[study.QuestionRow] { return db.questions }
func (db *DB) Messages() study.RemoteTable[study.Message]      { return db.messages }
func (db *DB) Files() study.RemoteTable[study.File]            { return db.files }
func (db *DB) Folders() study.RemoteTable[study.Folder]        { return db.folders }
