package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

const dateLayout = "2006-01-02"

type activityApi struct {
	store *study.Store
}

func registerActivityAPI(g *echo.Group, store *study.Store) {
	api := activityApi{store: store}

	qg := g.Group("/quiz-sessions")
	qg.POST("", api.createQuizSession)
	qg.GET("/:id", api.retrieveQuizSession, objectMiddleware(store.QuizSession))
	qg.PATCH("/:id", api.updateQuizSession)
	qg.GET("/:id/answers", api.queryQuizAnswers, objectMiddleware(store.QuizSession))
	g.POST("/quiz-answers", api.createQuizAnswer)

	sg := g.Group("/study-sessions")
	sg.GET("", api.queryStudySessions)
	sg.POST("", api.createStudySession)
	g.GET("/chapters/:id/study-sessions", api.queryChapterStudySessions, objectMiddleware(store.Chapter))

	g.GET("/stats", api.retrieveStats)
	g.PATCH("/stats", api.updateStats)

	eg := g.Group("/schedule-events")
	eg.GET("", api.queryScheduleEvents)
	eg.POST("", api.createScheduleEvent)
	eg.PATCH("/:id", api.updateScheduleEvent)
	eg.DELETE("/:id", api.destroyScheduleEvent)
}

// Quiz

func (api *activityApi) createQuizSession(ctx echo.Context) error {
	var data study.NewQuizSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuizSession")
	}
	qs, err := api.store.CreateQuizSession(data)
	if err != nil {
		return errors.Wrap(err, "creating quiz session")
	}
	return ctx.JSON(http.StatusCreated, qs)
}

func (api *activityApi) retrieveQuizSession(ctx echo.Context) error {
	qs, err := getContextObject[study.QuizSession](ctx)
	if err != nil {
		return errors.Wrap(err, "getting context quiz session")
	}
	return ctx.JSON(http.StatusOK, qs)
}

func (api *activityApi) updateQuizSession(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	var data study.UpdateQuizSession
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateQuizSession")
	}
	qs, ok, err := api.store.UpdateQuizSession(id, data)
	return updated(ctx, qs, ok, errors.Wrap(err, "updating quiz session"))
}

func (api *activityApi) queryQuizAnswers(ctx echo.Context) error {
	qs, err := getContextObject[study.QuizSession](ctx)
	if err != nil {
		return errors.Wrap(err, "getting context quiz session")
	}
	return ctx.JSON(http.StatusOK, api.store.QuizAnswersBySession(qs.ID))
}

func (api *activityApi) createQuizAnswer(ctx echo.Context) error {
	var data study.NewQuizAnswer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuizAnswer")
	}
	qa, err := api.store.CreateQuizAnswer(data)
	if err != nil {
		return errors.Wrap(err, "creating quiz answer")
	}
	return ctx.JSON(http.StatusCreated, qa)
}

// Study sessions

func (api *activityApi) queryStudySessions(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.StudySessions())
}

func (api *activityApi) queryChapterStudySessions(ctx echo.Context) error {
	ch, err := getContextObject[study.Chapter](ctx)
	if err != nil {
		return errors.Wrap(err, "getting context chapter")
	}
	return ctx.JSON(http.StatusOK, api.store.StudySessionsByChapter(ch.ID))
}

func (api *activityApi) createStudySession(ctx echo.Context) error {
	var data study.NewStudySession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudySession")
	}
	ss, err := api.store.CreateStudySession(data)
	if err != nil {
		return errors.Wrap(err, "creating study session")
	}
	return ctx.JSON(http.StatusCreated, ss)
}

// Stats

func (api *activityApi) retrieveStats(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.UserStats())
}

func (api *activityApi) updateStats(ctx echo.Context) error {
	var data study.UpdateUserStats
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUserStats")
	}
	stats, err := api.store.UpdateUserStats(data)
	if err != nil {
		return errors.Wrap(err, "updating stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

// Schedule

// queryScheduleEvents lists every event, or the events of `?date=YYYY-MM-DD` (UTC day).
func (api *activityApi) queryScheduleEvents(ctx echo.Context) error {
	date := ctx.QueryParam("date")
	if date == "" {
		return ctx.JSON(http.StatusOK, api.store.ScheduleEvents())
	}
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return core.NewValidationError(err, core.FieldError{Field: "date", Error: "must be a YYYY-MM-DD date"})
	}
	return ctx.JSON(http.StatusOK, api.store.ScheduleEventsByDate(day))
}

func (api *activityApi) createScheduleEvent(ctx echo.Context) error {
	var data study.NewScheduleEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewScheduleEvent")
	}
	ev, err := api.store.CreateScheduleEvent(data)
	if err != nil {
		return errors.Wrap(err, "creating schedule event")
	}
	return ctx.JSON(http.StatusCreated, ev)
}

func (api *activityApi) updateScheduleEvent(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	var data study.UpdateScheduleEvent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateScheduleEvent")
	}
	ev, ok, err := api.store.UpdateScheduleEvent(id, data)
	return updated(ctx, ev, ok, errors.Wrap(err, "updating schedule event"))
}

func (api *activityApi) destroyScheduleEvent(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	return deleted(ctx, api.store.DeleteScheduleEvent(id))
}
