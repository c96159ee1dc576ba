package booklend

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var yearRemove = regexp.MustCompile(`\((1|2)[0-9]{3}\)`)
var drukRemove = regexp.MustCompile(`(?i)/ druk [0-9]+`)

var titleCaser = cases.Title(language.Und)

// Book represents a book
type Book struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Language        string  `json:"language"`
	Description     string  `json:"description"`
	BorrowedCount   int     `gorm:"not null;default:0" json:"borrowedCount"`
	BorrowedAverage float64 `gorm:"not null;default:0" json:"borrowedAverage"`
	Borrow          *Borrow `gorm:"foreignKey:BookID" json:"borrow"`
}

func newBook(in BookInput) Book {
	return Book{
		Title:       in.Title,
		Author:      in.Author,
		Language:    in.Language,
		Description: in.Description,
	}
}

// Fix tidies up a title or author, only the importer uses it
func Fix(s string, capitalize, correctOrder bool) string {
	if s == "" {
		return "Unknown"
	}
	if capitalize {
		s = titleCaser.String(strings.ToLower(s))
		s = strings.ReplaceAll(s, "'S", "'s")
	}
	if correctOrder && strings.Contains(s, ",") {
		sParts := strings.Split(s, ",")
		if len(sParts) == 2 {
			s = strings.TrimSpace(sParts[1]) + " " + strings.TrimSpace(sParts[0])
		}
	}

	s = yearRemove.ReplaceAllString(s, "")
	s = drukRemove.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")

	return strings.Map(func(in rune) rune {
		switch in {
		case '“', '‹', '”', '›':
			return '"'
		case '_':
			return ' '
		case '‘', '’':
			return '\''
		}
		return in
	}, s)
}
