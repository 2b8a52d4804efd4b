package echoapi

import (
	"net/http"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studyhub/core/study"
)

func TestCatalogApi(t *testing.T) {
	server := setup(t, nil)

	physics := study.Subject{ID: 1, Name: "Physics", Color: "blue"}
	mechanics := study.Chapter{ID: 1, Title: "Mechanics", Description: null.StringFrom("Laws of motion and forces"), SubjectID: 1, CreatedAt: testNow}
	thermo := study.Chapter{ID: 2, Title: "Thermodynamics", Description: null.StringFrom("Heat and energy transfer"), SubjectID: 1, CreatedAt: testNow}
	optics := study.Chapter{ID: 7, Title: "Optics", SubjectID: 1, CreatedAt: testNow}
	lenses := study.Subtopic{ID: 1, Title: "Lenses", ChapterID: 7, CreatedAt: testNow}

	runHTTPTests(t, server, []httpTest{
		{
			name:     "create subject: invalid",
			method:   http.MethodPost,
			path:     "/api/subjects",
			body:     []byte(`{"name": " ", "color": "Light Blue"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"name": "this field cannot be blank", "color": "must be a color name or a hex color"}`),
		},
		{
			name:     "create subject",
			method:   http.MethodPost,
			path:     "/api/subjects",
			body:     []byte(`{"name": "Maths", "color": "#ff8800"}`),
			wantCode: http.StatusCreated,
			wantData: marshalObj(t, study.Subject{ID: 4, Name: "Maths", Color: "#ff8800"}),
		},
		{
			name:     "subject chapters",
			method:   http.MethodGet,
			path:     "/api/subjects/1/chapters",
			wantCode: http.StatusOK,
			wantData: marshalObj(t, []study.Chapter{mechanics, thermo}),
		},
		{
			name:     "subject chapters: unknown subject",
			method:   http.MethodGet,
			path:     "/api/subjects/9/chapters",
			wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "create chapter: required fields",
			method:   http.MethodPost,
			path:     "/api/chapters",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"title": "this field is required", "subjectId": "this field is required"}`),
		},
		{
			name:     "create chapter: unknown subject",
			method:   http.MethodPost,
			path:     "/api/chapters",
			body:     []byte(`{"title": "Orphan", "subjectId": 42}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"subjectId": "subject not found"}`),
		},
		{
			name:     "create chapter",
			method:   http.MethodPost,
			path:     "/api/chapters",
			body:     []byte(`{"title": "Optics", "subjectId": 1}`),
			wantCode: http.StatusCreated,
			wantData: marshalObj(t, optics),
		},
		{
			name:     "retrieve chapter",
			method:   http.MethodGet,
			path:     "/api/chapters/2",
			wantCode: http.StatusOK,
			wantData: marshalObj(t, thermo),
		},
		{
			name:     "update chapter",
			method:   http.MethodPatch,
			path:     "/api/chapters/7",
			body:     []byte(`{"description": "Light and lenses", "completedQuestions": 3}`),
			wantCode: http.StatusOK,
			wantData: marshalObj(t, study.Chapter{
				ID: 7, Title: "Optics", Description: null.StringFrom("Light and lenses"), SubjectID: 1,
				CompletedQuestions: 3, CreatedAt: testNow,
			}),
		},
		{
			name:     "update chapter: not found",
			method:   http.MethodPatch,
			path:     "/api/chapters/70",
			body:     []byte(`{"title": "Nope"}`),
			wantCode: http.StatusNotFound,
			wantData: marshalObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "update chapter: invalid",
			method:   http.MethodPatch,
			path:     "/api/chapters/7",
			body:     []byte(`{"totalQuestions": -1}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"totalQuestions": "totalQuestions must be 0 or greater"}`),
		},
		{
			name:     "create subtopic: unknown chapter",
			method:   http.MethodPost,
			path:     "/api/subtopics",
			body:     []byte(`{"title": "Lost", "chapterId": 70}`),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, httpErr{Error: "Chapter(s) with ID(s) 70 not found. Please create the chapter first."}),
		},
		{
			name:     "create subtopic",
			method:   http.MethodPost,
			path:     "/api/subtopics",
			body:     []byte(`{"title": "Lenses", "chapterId": 7}`),
			wantCode: http.StatusCreated,
			wantData: marshalObj(t, lenses),
		},
		{
			name:     "chapter subtopics",
			method:   http.MethodGet,
			path:     "/api/chapters/7/subtopics",
			wantCode: http.StatusOK,
			wantData: marshalObj(t, []study.Subtopic{lenses}),
		},
		{
			name:     "delete subtopic",
			method:   http.MethodDelete,
			path:     "/api/subtopics/1",
			wantCode: http.StatusNoContent,
		},
		{
			name:     "delete subtopic: not found",
			method:   http.MethodDelete,
			path:     "/api/subtopics/1",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "delete chapter",
			method:   http.MethodDelete,
			path:     "/api/chapters/7",
			wantCode: http.StatusNoContent,
		},
		{
			name:     "delete chapter: not found",
			method:   http.MethodDelete,
			path:     "/api/chapters/7",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "subjects",
			method:   http.MethodGet,
			path:     "/api/subjects",
			wantCode: http.StatusOK,
			wantData: marshalObj(t, []study.Subject{
				physics,
				{ID: 2, Name: "Chemistry", Color: "green"},
				{ID: 3, Name: "Biology", Color: "purple"},
				{ID: 4, Name: "Maths", Color: "#ff8800"},
			}),
		},
	})
}
