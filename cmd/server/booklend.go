package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gnur/booklend"
)

func (app *booklendApp) getStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := app.db.Ping(ctx); err != nil {
		app.logger.WithField("err", err).Error("database did not answer ping")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unavailable",
			"version": app.cfg.Version,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": app.cfg.Version,
	})
}

func (app *booklendApp) getUsers(c *gin.Context) {
	users, err := app.library.Users(c.Request.Context())
	if err != nil {
		app.fail(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusOK, messageResponse{Message: "No data"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (app *booklendApp) getUser(c *gin.Context) {
	ids, err := paramIDs(c, idParam{"id", "id"})
	if err != nil {
		app.fail(c, err)
		return
	}

	u, err := app.library.User(c.Request.Context(), ids[0])
	if errors.Is(err, booklend.ErrNotFound) {
		c.JSON(http.StatusOK, messageResponse{
			Message: fmt.Sprintf("User not found with id:%d", ids[0]),
		})
		return
	} else if err != nil {
		app.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (app *booklendApp) createUser(c *gin.Context) {
	var in booklend.UserInput
	if err := bindBody(c, &in); err != nil {
		app.fail(c, err)
		return
	}

	u, err := app.library.CreateUser(c.Request.Context(), in)
	if err != nil {
		app.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"user": u,
	})
}

func (app *booklendApp) getBooks(c *gin.Context) {
	books, err := app.library.Books(c.Request.Context())
	if err != nil {
		app.fail(c, err)
		return
	}
	if books == nil {
		books = []booklend.Book{}
	}
	c.JSON(http.StatusOK, books)
}

func (app *booklendApp) getBook(c *gin.Context) {
	ids, err := paramIDs(c, idParam{"id", "id"})
	if err != nil {
		app.fail(c, err)
		return
	}

	b, err := app.library.Book(c.Request.Context(), ids[0])
	if errors.Is(err, booklend.ErrNotFound) {
		c.JSON(http.StatusOK, messageResponse{
			Message: fmt.Sprintf("Book not found with id:%d", ids[0]),
		})
		return
	} else if err != nil {
		app.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (app *booklendApp) createBook(c *gin.Context) {
	var in booklend.BookInput
	if err := bindBody(c, &in); err != nil {
		app.fail(c, err)
		return
	}

	b, err := app.library.CreateBook(c.Request.Context(), in)
	if err != nil {
		app.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}
