package gormdb

import (
	"context"

	"github.com/gnur/booklend"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (d *DB) GetUsers(ctx context.Context) ([]booklend.User, error) {
	var users []booklend.User
	tx := d.db.WithContext(ctx).Preload("Borrows").Order("id").Find(&users)
	if tx.Error != nil {
		return nil, translate(tx.Error)
	}
	for i := range users {
		if users[i].Borrows == nil {
			users[i].Borrows = []booklend.Borrow{}
		}
	}
	return users, nil
}

func (d *DB) GetUser(ctx context.Context, id uint) (booklend.User, error) {
	var u booklend.User
	tx := d.db.WithContext(ctx).Preload("Borrows").First(&u, id)
	if tx.Error != nil {
		return u, translate(tx.Error)
	}
	if u.Borrows == nil {
		u.Borrows = []booklend.Borrow{}
	}
	return u, nil
}

func (d *DB) GetUserByEmail(ctx context.Context, email string) (booklend.User, error) {
	var u booklend.User
	tx := d.db.WithContext(ctx).Where("email = ?", email).First(&u)
	return u, translate(tx.Error)
}

func (d *DB) SaveUser(ctx context.Context, u *booklend.User) error {
	tx := d.db.WithContext(ctx).Omit(clause.Associations).Create(u)
	return translate(tx.Error)
}

func (d *DB) GetBooks(ctx context.Context) ([]booklend.Book, error) {
	var books []booklend.Book
	tx := d.db.WithContext(ctx).Preload("Borrow").Order("id").Find(&books)
	return books, translate(tx.Error)
}

func (d *DB) GetBook(ctx context.Context, id uint) (booklend.Book, error) {
	var b booklend.Book
	tx := d.db.WithContext(ctx).Preload("Borrow").First(&b, id)
	return b, translate(tx.Error)
}

func (d *DB) SaveBook(ctx context.Context, b *booklend.Book) error {
	tx := d.db.WithContext(ctx).Omit(clause.Associations).Create(b)
	return translate(tx.Error)
}

func (d *DB) IncrementBorrowedCount(ctx context.Context, bookID uint) error {
	tx := d.db.WithContext(ctx).
		Model(&booklend.Book{}).
		Where("id = ?", bookID).
		UpdateColumn("borrowed_count", gorm.Expr("borrowed_count + ?", 1))
	return affected(tx)
}

func (d *DB) SetBorrowedAverage(ctx context.Context, bookID uint, avg float64) error {
	tx := d.db.WithContext(ctx).
		Model(&booklend.Book{}).
		Where("id = ?", bookID).
		UpdateColumn("borrowed_average", avg)
	return affected(tx)
}

func (d *DB) SaveBorrow(ctx context.Context, b *booklend.Borrow) error {
	tx := d.db.WithContext(ctx).Omit(clause.Associations).Create(b)
	return translate(tx.Error)
}

func (d *DB) GetBorrowByBook(ctx context.Context, bookID uint) (booklend.Borrow, error) {
	var b booklend.Borrow
	tx := d.db.WithContext(ctx).Where("book_id = ?", bookID).First(&b)
	return b, translate(tx.Error)
}

func (d *DB) DeleteBorrow(ctx context.Context, id uint) error {
	tx := d.db.WithContext(ctx).Delete(&booklend.Borrow{}, id)
	return affected(tx)
}

// affected reports ErrNotFound when a write matched no row
func affected(tx *gorm.DB) error {
	if tx.Error != nil {
		return translate(tx.Error)
	}
	if tx.RowsAffected == 0 {
		return booklend.ErrNotFound
	}
	return nil
}
