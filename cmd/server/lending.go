package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gnur/booklend"
)

// gin needs the same wildcard name as /users/:id, so the user id is :id here
var lendingParams = []idParam{
	{param: "id", field: "userId"},
	{param: "bookId", field: "bookId"},
}

func (app *booklendApp) borrowBook(c *gin.Context) {
	ids, err := paramIDs(c, lendingParams...)
	if err != nil {
		borrowsProcessed.WithLabelValues(result(err)).Inc()
		app.fail(c, err)
		return
	}

	borrow, err := app.library.BorrowBook(c.Request.Context(), ids[0], ids[1])
	borrowsProcessed.WithLabelValues(result(err)).Inc()
	if err != nil {
		app.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, borrow)
}

func (app *booklendApp) returnBook(c *gin.Context) {
	ids, err := paramIDs(c, lendingParams...)
	if err != nil {
		returnsProcessed.WithLabelValues(result(err)).Inc()
		app.fail(c, err)
		return
	}

	var in booklend.ReturnInput
	if err := bindBody(c, &in); err != nil {
		returnsProcessed.WithLabelValues(result(err)).Inc()
		app.fail(c, err)
		return
	}

	err = app.library.ReturnBook(c.Request.Context(), ids[0], ids[1], in)
	returnsProcessed.WithLabelValues(result(err)).Inc()
	if err != nil {
		app.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
