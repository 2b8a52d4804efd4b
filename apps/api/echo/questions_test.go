package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studyhub/core/study"
	dummydb "github.com/trezcool/studyhub/storage/database/dummy"
)

func TestQuestionApi(t *testing.T) {
	server := setup(t, nil)

	first := study.Question{
		ID: 1, ChapterID: 3, SubtopicID: null.IntFrom(2), Question: "What is an electron?",
		Options: []string{"particle", "wave", "both", "neither"}, CorrectAnswer: 2,
		Explanation: null.StringFrom("duality"), CreatedAt: testNow,
	}

	runHTTPTests(t, server, []httpTest{
		{
			name:   "create: invalid letter",
			method: http.MethodPost,
			path:   "/api/questions",
			body: []byte(`{"question": "q", "optionA": "a", "optionB": "b", "optionC": "c", "optionD": "d",
				"correctAnswer": "E", "chapterId": 3}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"correctAnswer": "correct answer must be one of A, B, C or D"}`),
		},
		{
			name:   "create",
			method: http.MethodPost,
			path:   "/api/questions",
			body: []byte(`{"question": "What is an electron?", "optionA": "particle", "optionB": "wave", "optionC": "both",
				"optionD": "neither", "correctAnswer": "c", "explanation": "duality", "chapterId": 3, "subtopicId": 2}`),
			wantCode: http.StatusCreated,
			wantData: marshalObj(t, first),
		},
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     "/api/questions/1",
			wantCode: http.StatusOK,
			wantData: marshalObj(t, first),
		},
		{
			name:     "retrieve: not found",
			method:   http.MethodGet,
			path:     "/api/questions/2",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "by subtopic",
			method:   http.MethodGet,
			path:     "/api/questions/subtopic/2",
			wantCode: http.StatusOK,
			wantData: marshalObj(t, []study.Question{first}),
		},
		{
			name:   "bulk: missing chapters",
			method: http.MethodPost,
			path:   "/api/questions/bulk",
			body: []byte(`[
				{"question": "q1", "optionA": "a", "correctAnswer": "A", "chapterId": 8},
				{"question": "q2", "optionA": "a", "correctAnswer": "A", "chapterId": 1},
				{"question": "q3", "optionA": "a", "correctAnswer": "A", "chapterId": 8}
			]`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "Chapter(s) with ID(s) 8 not found. Please create the chapter first."}),
		},
		{
			name:     "bulk: empty",
			method:   http.MethodPost,
			path:     "/api/questions/bulk",
			body:     []byte(`[]`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"questions": "no questions provided"}`),
		},
		{
			name:   "bulk",
			method: http.MethodPost,
			path:   "/api/questions/bulk",
			body: []byte(`[
				{"question": "q1", "optionA": "a", "optionB": "b", "correctAnswer": "B", "chapterId": 3},
				{"question": "q2", "optionA": "a", "correctAnswer": "A", "chapterId": 3, "difficulty": "hard"}
			]`),
			wantCode: http.StatusCreated,
			wantData: marshalObj(t, []study.Question{
				{ID: 2, ChapterID: 3, Question: "q1", Options: []string{"a", "b", "", ""}, CorrectAnswer: 1, CreatedAt: testNow},
				{ID: 3, ChapterID: 3, Question: "q2", Options: []string{"a", "", "", ""}, Difficulty: null.StringFrom("hard"), CreatedAt: testNow},
			}),
		},
	})

	t.Run("import csv", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/api/questions/import-csv", []byte(`{"questions": [
			{"question": "q4", "optionA": "a", "optionB": "b", "optionC": "c", "optionD": "d", "correctAnswer": "D",
			 "explanation": null, "difficulty": null, "chapterId": 3, "subtopicId": null}
		]}`))
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp ImportResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Successfully imported 1 questions", resp.Message)
		require.Len(t, resp.Questions, 1)
		assert.Equal(t, 4, resp.Questions[0].ID)
		assert.Equal(t, 3, resp.Questions[0].CorrectAnswer)
	})

	t.Run("chapter totals", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/api/chapters/3")
		server.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var ch study.Chapter
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ch))
		assert.Equal(t, 4, ch.TotalQuestions)

		req, rec = newRequest(http.MethodGet, "/api/questions/chapter/3")
		server.ServeHTTP(rec, req)
		var questions []study.Question
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &questions))
		assert.Len(t, questions, 4)

		req, rec = newRequest(http.MethodGet, "/api/questions/chapter/30")
		server.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestQuestionApi_remoteUnavailable(t *testing.T) {
	server := setup(t, dummydb.Open())

	runHTTPTests(t, server, []httpTest{
		{
			name:     "create",
			method:   http.MethodPost,
			path:     "/api/questions",
			body:     []byte(`{"question": "q", "optionA": "a", "correctAnswer": "A", "chapterId": 1}`),
			wantCode: http.StatusInternalServerError,
			wantData: marshalObj(t, httpErr{Error: "Internal Server Error"}),
		},
		{
			name:     "bulk falls back to the cache",
			method:   http.MethodPost,
			path:     "/api/questions/bulk",
			body:     []byte(`[{"question": "q", "optionA": "a", "correctAnswer": "A", "chapterId": 1}]`),
			wantCode: http.StatusCreated,
			wantData: marshalObj(t, []study.Question{
				{ID: 1, ChapterID: 1, Question: "q", Options: []string{"a", "", "", ""}, CreatedAt: testNow},
			}),
		},
		{
			name:     "by subtopic",
			method:   http.MethodGet,
			path:     "/api/questions/subtopic/1",
			wantCode: http.StatusOK,
			wantData: []byte(`[]`),
		},
	})
}

func TestQuestionApi_totalsAfterChapterUpdate(t *testing.T) {
	server := setup(t, nil)

	runHTTPTests(t, server, []httpTest{
		{
			name:     "set total",
			method:   http.MethodPatch,
			path:     "/api/chapters/1",
			body:     []byte(`{"totalQuestions": 10}`),
			wantCode: http.StatusOK,
		},
		{
			name:   "bulk",
			method: http.MethodPost,
			path:   "/api/questions/bulk",
			body: []byte(`[
				{"question": "q1", "optionA": "a", "correctAnswer": "A", "chapterId": 1},
				{"question": "q2", "optionA": "a", "correctAnswer": "A", "chapterId": 1},
				{"question": "q3", "optionA": "a", "correctAnswer": "A", "chapterId": 1}
			]`),
			wantCode: http.StatusCreated,
		},
	})

	req, rec := newRequest(http.MethodGet, "/api/chapters/1")
	server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var ch study.Chapter
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ch))
	assert.Equal(t, 13, ch.TotalQuestions)
}
