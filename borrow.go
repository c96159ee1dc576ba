package booklend

import (
	"time"
)

// Borrow links a user to the book they currently hold. There is at most one
// per book, it is deleted when the book is returned.
type Borrow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	BookID     uint      `gorm:"not null;uniqueIndex" json:"bookId"`
	BorrowedAt time.Time `gorm:"autoCreateTime" json:"borrowedAt"`

	User *User `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Book *Book `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

// nextAverage is the rating aggregate stored on a book after a return.
// It divides by the lifetime borrow count, not by the number of ratings.
func nextAverage(score int, previous float64, borrowedCount int) float64 {
	if borrowedCount <= 0 {
		return float64(score)
	}
	return (float64(score) + previous) / float64(borrowedCount)
}
