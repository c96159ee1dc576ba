package booklend

// User
type User struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Name    string   `gorm:"not null" json:"name"`
	Email   string   `gorm:"uniqueIndex;not null" json:"email"`
	Borrows []Borrow `gorm:"foreignKey:UserID" json:"borrows"`
}
