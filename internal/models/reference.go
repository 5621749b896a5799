package models

// Genre is a read-only reference row categorizing films.
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// MpaRating is a read-only reference row holding an MPA age rating.
type MpaRating struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

// TableName specifies the table name for GORM
func (MpaRating) TableName() string {
	return "mpa_ratings"
}
