package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studyhub/core/study"
)

type remoteApi struct {
	store *study.Store
	hub   *Hub
}

func registerRemoteAPI(g *echo.Group, store *study.Store, hub *Hub) {
	api := remoteApi{store: store, hub: hub}

	mg := g.Group("/messages")
	mg.GET("", api.queryMessages)
	mg.POST("", api.createMessage)
	mg.GET("/ws", hub.serveWS)

	fg := g.Group("/files")
	fg.GET("", api.queryFiles)
	fg.POST("", api.createFile)
	fg.DELETE("/:id", api.destroyFile)

	dg := g.Group("/folders")
	dg.GET("", api.queryFolders)
	dg.POST("", api.createFolder)
	dg.DELETE("/:id", api.destroyFolder)
}

// removed answers a remote delete: false means the remote store failed.
func removed(ctx echo.Context, ok bool) error {
	if !ok {
		return errHttpRemoteUnavailable
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Messages

func (api *remoteApi) queryMessages(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.Messages(ctx.Request().Context()))
}

func (api *remoteApi) createMessage(ctx echo.Context) error {
	var data study.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}
	msg, err := api.store.CreateMessage(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating message")
	}
	api.hub.Broadcast(msg)
	return ctx.JSON(http.StatusCreated, msg)
}

// Files

func (api *remoteApi) queryFiles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.Files(ctx.Request().Context()))
}

func (api *remoteApi) createFile(ctx echo.Context) error {
	var data study.NewFile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFile")
	}
	f, err := api.store.CreateFile(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating file")
	}
	return ctx.JSON(http.StatusCreated, f)
}

func (api *remoteApi) destroyFile(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	return removed(ctx, api.store.DeleteFile(ctx.Request().Context(), id))
}

// Folders

func (api *remoteApi) queryFolders(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.store.Folders(ctx.Request().Context()))
}

func (api *remoteApi) createFolder(ctx echo.Context) error {
	var data study.NewFolder
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFolder")
	}
	f, err := api.store.CreateFolder(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating folder")
	}
	return ctx.JSON(http.StatusCreated, f)
}

func (api *remoteApi) destroyFolder(ctx echo.Context) error {
	id, err := idParam(ctx)
	if err != nil {
		return err
	}
	return removed(ctx, api.store.DeleteFolder(ctx.Request().Context(), id))
}
