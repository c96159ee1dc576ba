package main

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gnur/booklend"
)

// fail writes the response for an error coming out of the library
func (app *booklendApp) fail(c *gin.Context, err error) {
	var verr *booklend.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr)
	case errors.Is(err, booklend.ErrNotFound):
		c.JSON(http.StatusNotFound, messageResponse{Message: err.Error()})
	case errors.Is(err, booklend.ErrConflict):
		c.JSON(http.StatusConflict, messageResponse{Message: err.Error()})
	default:
		dbErrors.WithLabelValues(c.FullPath()).Inc()
		c.Error(err)
		c.JSON(http.StatusInternalServerError, messageResponse{Message: err.Error()})
	}
}

// result is the metrics label for the outcome of an action
func result(err error) string {
	var verr *booklend.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, booklend.ErrNotFound):
		return "not_found"
	case errors.Is(err, booklend.ErrConflict):
		return "conflict"
	}
	return "error"
}

// bindBody decodes an optional JSON body, a missing body leaves in untouched
func bindBody(c *gin.Context, in any) error {
	err := c.ShouldBindJSON(in)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return &booklend.ValidationError{Errors: []booklend.FieldError{{
		Location: "body",
		Field:    "",
		Message:  "Body is not valid JSON: " + err.Error(),
	}}}
}

type idParam struct {
	param string
	field string
}

// paramIDs parses numeric path parameters, every bad one is reported
func paramIDs(c *gin.Context, params ...idParam) ([]uint, error) {
	ids := make([]uint, 0, len(params))
	var errs []booklend.FieldError
	for _, p := range params {
		raw := c.Param(p.param)
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			errs = append(errs, booklend.FieldError{
				Location: "params",
				Field:    p.field,
				Message:  p.field + " must be a positive integer.",
				Value:    raw,
			})
			continue
		}
		ids = append(ids, uint(id))
	}
	if len(errs) > 0 {
		return nil, &booklend.ValidationError{Errors: errs}
	}
	return ids, nil
}
