// Package booklend lends books to users and keeps track of how they were rated.
package booklend

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Library holds the lending rules, all state lives in the Store
type Library struct {
	db     Store
	logger *logrus.Entry
}

func New(db Store, logger *logrus.Entry) *Library {
	return &Library{
		db:     db,
		logger: logger,
	}
}

func (l *Library) Users(ctx context.Context) ([]User, error) {
	users, err := l.db.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get users: %w", err)
	}
	return users, nil
}

func (l *Library) User(ctx context.Context, id uint) (User, error) {
	u, err := l.db.GetUser(ctx, id)
	if err != nil {
		return u, fmt.Errorf("could not get user %d: %w", id, err)
	}
	return u, nil
}

// CreateUser registers a user after checking the email is valid and unused
// and the name is not empty.
func (l *Library) CreateUser(ctx context.Context, in UserInput) (User, error) {
	err := Validate(ctx,
		IsEmail("body", "email", in.Email, "Email is incorrect."),
		Custom("body", "email", in.Email, "Email already in use.", func(ctx context.Context) (bool, error) {
			_, err := l.db.GetUserByEmail(ctx, in.Email)
			if errors.Is(err, ErrNotFound) {
				return true, nil
			}
			return false, err
		}),
		NotEmpty("body", "name", in.Name, "Name cannot be empty."),
	)
	if err != nil {
		return User{}, err
	}

	u := User{
		Name:    in.Name,
		Email:   in.Email,
		Borrows: []Borrow{},
	}
	err = l.db.SaveUser(ctx, &u)
	if errors.Is(err, ErrDuplicate) {
		return User{}, conflict("email %s is already in use", in.Email)
	} else if err != nil {
		return User{}, fmt.Errorf("could not save user: %w", err)
	}

	l.logger.WithField("user", u.ID).Info("user registered")
	return u, nil
}

func (l *Library) Books(ctx context.Context) ([]Book, error) {
	books, err := l.db.GetBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get books: %w", err)
	}
	return books, nil
}

func (l *Library) Book(ctx context.Context, id uint) (Book, error) {
	b, err := l.db.GetBook(ctx, id)
	if err != nil {
		return b, fmt.Errorf("could not get book %d: %w", id, err)
	}
	return b, nil
}

// CreateBook stores the book as provided, counters start at zero
func (l *Library) CreateBook(ctx context.Context, in BookInput) (Book, error) {
	b := newBook(in)
	if err := l.db.SaveBook(ctx, &b); err != nil {
		return Book{}, fmt.Errorf("could not save book: %w", err)
	}
	l.logger.WithField("book", b.ID).Debug("book added")
	return b, nil
}
