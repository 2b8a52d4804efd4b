package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core/study"
)

type catalogApi struct {
	store *study.Store
}

func registerCatalogAPI(g *echo.Group, store *study.Store) {
	api := catalogApi{store: store}

	sg := g.Group("/subjects")
	sg.GET("", api.querySubjects)
	sg.POST("", api.createSubject)
	sg.GET("/:id/chapters", api.querySubjectChapters, objectMiddleware(store.Subject))

	cg := g.Group("/chapters")
	cg.GET("", api.queryChapters)
	cg.POST("", api.createChapter)

	// detail endpoints
	dg := cg.Group("/:id")
	dg.GET("", api.retrieveChapter, objectMiddleware(store.Chapter))
	dg.PATCH("", api.updateChapter)
	dg.DELETE("", api.destroyChapter)
	dg.GET("/subtopics", api.querySubtopics, objectMiddleware(store.Chapter))

	tg := g.Group("/subtopics")
	tg.POST("", api.createSubtopic)
	tg.DELETE("/:id", api.destroySubtopic)
}

// Subjects

func (api *catalogApi) querySubjects(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.Subjects())
}

func (api *catalogApi) createSubject(ctx echo.Context) error {
	var data study.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	subj, err := api.store.CreateSubject(data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, subj)
}

func (api *catalogApi) querySubjectChapters(ctx echo.Context) error {
	subj, err := getContextObject[study.Subject](ctx)
	if err != nil {
		return errors.Wrap(err, "getting context subject")
	}
	return ctx.JSON(http.StatusOK, api.store.ChaptersBySubject(subj.ID))
}

// Chapters

func (api *catalogApi) queryChapters(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.Chapters())
}

func (api *catalogApi) createChapter(ctx echo.Context) error {
	var data study.NewChapter
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewChapter")
	}
	ch, err := api.store.CreateChapter(data)
	if err != nil {
		return errors.Wrap(err, "creating chapter")
	}
	return ctx.JSON(http.StatusCreated, ch)
}

func (api *catalogApi) retrieveChapter(ctx echo.Context) error {
	ch, err := getContextObject[study.Chapter](ctx)
	if err != nil {
		return errors.Wrap(err, "getting context chapter")
	}
	return ctx.JSON(http.StatusOK, ch)
}

func (api *catalogApi) updateChapter(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	var data study.UpdateChapter
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateChapter")
	}
	ch, ok, err := api.store.UpdateChapter(id, data)
	return updated(ctx, ch, ok, errors.Wrap(err, "updating chapter"))
}

func (api *catalogApi) destroyChapter(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	return deleted(ctx, api.store.DeleteChapter(id))
}

// Subtopics

func (api *catalogApi) querySubtopics(ctx echo.Context) error {
	ch, err := getContextObject[study.Chapter](ctx)
	if err != nil {
		return errors.Wrap(err, "getting context chapter")
	}
	return ctx.JSON(http.StatusOK, api.store.SubtopicsByChapter(ch.ID))
}

func (api *catalogApi) createSubtopic(ctx echo.Context) error {
	var data study.NewSubtopic
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubtopic")
	}
	st, err := api.store.CreateSubtopic(data)
	if err != nil {
		return errors.Wrap(err, "creating subtopic")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *catalogApi) destroySubtopic(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	return deleted(ctx, api.store.DeleteSubtopic(id))
}
