package booklend

import "context"

// Store is the data access the library needs. Lookups return ErrNotFound
// for missing rows, inserts return ErrDuplicate on a unique violation.
type Store interface {
	// Transaction runs fn against a Store bound to one database
	// transaction. It commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(Store) error) error

	GetUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id uint) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	SaveUser(ctx context.Context, u *User) error

	GetBooks(ctx context.Context) ([]Book, error)
	GetBook(ctx context.Context, id uint) (Book, error)
	SaveBook(ctx context.Context, b *Book) error
	IncrementBorrowedCount(ctx context.Context, bookID uint) error
	SetBorrowedAverage(ctx context.Context, bookID uint, avg float64) error

	SaveBorrow(ctx context.Context, b *Borrow) error
	GetBorrowByBook(ctx context.Context, bookID uint) (Borrow, error)
	DeleteBorrow(ctx context.Context, id uint) error

	Ping(ctx context.Context) error
	Close() error
}
