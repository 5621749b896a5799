package models

// Like marks that a user liked a film. The pair is the primary key, so the
// relation has set semantics: inserting twice cannot produce a second row.
type Like struct {
	FilmID uint `gorm:"primaryKey;autoIncrement:false" json:"filmId"`
	UserID uint `gorm:"primaryKey;autoIncrement:false" json:"userId"`
}
