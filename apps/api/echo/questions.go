package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

type (
	questionApi struct {
		store *study.Store
	}

	// ImportRequest is the payload of the CSV import: the client parses the file.
	ImportRequest struct {
		Questions []study.NewQuestion `json:"questions"`
	}

	ImportResponse struct {
		Message   string           `json:"message"`
		Questions []study.Question `json:"questions"`
	}
)

func registerQuestionAPI(g *echo.Group, store *study.Store) {
	api := questionApi{store: store}

	qg := g.Group("/questions")
	qg.POST("", api.create)
	qg.POST("/bulk", api.createBulk)
	qg.POST("/import-csv", api.importCSV)
	qg.GET("/chapter/:id", api.queryByChapter, objectMiddleware(store.Chapter))
	qg.GET("/subtopic/:id", api.queryBySubtopic)
	qg.GET("/:id", api.retrieve, objectMiddleware(store.Question))
}

func (api *questionApi) queryByChapter(ctx echo.Context) error {
	ch, err := getContextObject[study.Chapter](ctx)
	if err != nil {
		return errors.Wrap(err, "getting context chapter")
	}
	return ctx.JSON(http.StatusOK, api.store.QuestionsByChapter(ch.ID))
}

func (api *questionApi) queryBySubtopic(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.store.QuestionsBySubtopic(ctx.Request().Context(), id))
}

func (api *questionApi) retrieve(ctx echo.Context) error {
	q, err := getContextObject[study.Question](ctx)
	if err != nil {
		return errors.Wrap(err, "getting context question")
	}
	return ctx.JSON(http.StatusOK, q)
}

func (api *questionApi) create(ctx echo.Context) error {
	var data study.NewQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuestion")
	}
	q, err := api.store.CreateQuestion(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating question")
	}
	return ctx.JSON(http.StatusCreated, q)
}

func (api *questionApi) createBulk(ctx echo.Context) error {
	var data []study.NewQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to []NewQuestion")
	}
	questions, err := api.createMany(ctx, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, questions)
}

func (api *questionApi) importCSV(ctx echo.Context) error {
	var data ImportRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ImportRequest")
	}
	questions, err := api.createMany(ctx, data.Questions)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, ImportResponse{
		Message:   fmt.Sprintf("Successfully imported %d questions", len(questions)),
		Questions: questions,
	})
}

func (api *questionApi) createMany(ctx echo.Context, data []study.NewQuestion) ([]study.Question, error) {
	if len(data) == 0 {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "questions", Error: "no questions provided"})
	}
	questions, err := api.store.CreateBulkQuestions(ctx.Request().Context(), data)
	if err != nil {
		return nil, errors.Wrap(err, "creating questions")
	}
	return questions, nil
}
