package booklend

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// BorrowBook hands a book to a user. Both must exist and the book must not be
// borrowed already; the borrow and the counter update commit together.
func (l *Library) BorrowBook(ctx context.Context, userID, bookID uint) (Borrow, error) {
	var borrow Borrow

	err := l.db.Transaction(ctx, func(tx Store) error {
		if _, err := mustExist(ctx, tx, userID, bookID); err != nil {
			return err
		}

		borrow = Borrow{
			UserID: userID,
			BookID: bookID,
		}
		err := tx.SaveBorrow(ctx, &borrow)
		if errors.Is(err, ErrDuplicate) {
			return conflict("book %d is already borrowed, you cannot borrow an already borrowed book", bookID)
		} else if err != nil {
			return fmt.Errorf("could not save borrow: %w", err)
		}

		if err := tx.IncrementBorrowedCount(ctx, bookID); err != nil {
			return fmt.Errorf("could not update borrow count of book %d: %w", bookID, err)
		}
		return nil
	})
	if err != nil {
		return Borrow{}, err
	}

	l.logger.WithFields(logrus.Fields{
		"user": userID,
		"book": bookID,
	}).Info("book borrowed")
	return borrow, nil
}

// ReturnBook ends the live borrow of a book and folds the score into the
// book's rating.
func (l *Library) ReturnBook(ctx context.Context, userID, bookID uint, in ReturnInput) error {
	err := Validate(ctx,
		Present("body", "score", in.Score, "Score cannot be blank."),
		IntBetween("body", "score", in.Score, 1, 10, "Score must be 1-10."),
	)
	if err != nil {
		return err
	}
	score64, _ := intValue(in.Score)
	score := int(score64)

	var avg float64
	err = l.db.Transaction(ctx, func(tx Store) error {
		book, err := mustExist(ctx, tx, userID, bookID)
		if err != nil {
			return err
		}

		borrow, err := tx.GetBorrowByBook(ctx, bookID)
		if errors.Is(err, ErrNotFound) {
			return notFound("there is no borrowed book with that id: %d", bookID)
		} else if err != nil {
			return fmt.Errorf("could not get borrow of book %d: %w", bookID, err)
		}

		if err := tx.DeleteBorrow(ctx, borrow.ID); err != nil {
			return fmt.Errorf("could not delete borrow %d: %w", borrow.ID, err)
		}

		avg = nextAverage(score, book.BorrowedAverage, book.BorrowedCount)
		if err := tx.SetBorrowedAverage(ctx, bookID, avg); err != nil {
			return fmt.Errorf("could not update average of book %d: %w", bookID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.WithFields(logrus.Fields{
		"user":    userID,
		"book":    bookID,
		"score":   score,
		"average": avg,
	}).Info("book returned")
	return nil
}

// mustExist checks the user and the book in that order and returns the book
func mustExist(ctx context.Context, db Store, userID, bookID uint) (Book, error) {
	_, err := db.GetUser(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return Book{}, notFound("there is no user with that id: %d, you cannot take action", userID)
	} else if err != nil {
		return Book{}, fmt.Errorf("could not get user %d: %w", userID, err)
	}

	book, err := db.GetBook(ctx, bookID)
	if errors.Is(err, ErrNotFound) {
		return Book{}, notFound("there is no book with that id: %d, you cannot take action", bookID)
	} else if err != nil {
		return Book{}, fmt.Errorf("could not get book %d: %w", bookID, err)
	}
	return book, nil
}
