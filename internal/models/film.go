// Package models contains data structures for the application's domain models.
package models

// EarliestReleaseDate is the date of the first public film screening.
// No film can be released before it.
var EarliestReleaseDate = NewDate(1895, 12, 28)

// Film represents a film in the catalog.
type Film struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"size:200" json:"description,omitempty"`
	ReleaseDate Date       `gorm:"type:date" json:"releaseDate"`
	Duration    int        `json:"duration"`
	MpaID       *uint      `json:"-"`
	Mpa         *MpaRating `gorm:"foreignKey:MpaID" json:"mpa,omitempty"`
	Genres      []Genre    `gorm:"many2many:film_genres" json:"genres"`
}
