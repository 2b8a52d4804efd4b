package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const objectKey = "object"

var errObjNotFoundInCtx = errors.New("object not found in echo.Context")

// idParam parses the `:id` path param. Malformed ids cannot match anything: they are answered with 404.
func idParam(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		return 0, errHttpNotFound
	}
	return id, nil
}

// objectMiddleware loads the object of the `:id` path param with get and stores it in the context.
func objectMiddleware[T any](get func(id int) (T, bool)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := idParam(ctx)
			if err != nil {
				return err
			}
			obj, ok := get(id)
			if !ok {
				return errHttpNotFound
			}
			ctx.Set(objectKey, obj)
			return next(ctx)
		}
	}
}

func getContextObject[T any](ctx echo.Context) (T, error) {
	obj, ok := ctx.Get(objectKey).(T)
	if !ok {
		return obj, errObjNotFoundInCtx
	}
	return obj, nil
}

// updated answers a partial update: the object if it was found, 404 otherwise.
func updated[T any](ctx echo.Context, obj T, ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, obj)
}

// deleted answers a delete: 204 if it happened, 404 otherwise.
func deleted(ctx echo.Context, ok bool) error {
	if !ok {
		return errHttpNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}
