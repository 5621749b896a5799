package models

// User represents a registered user.
// Name falls back to Login when left blank (applied during validation).
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"not null" json:"email"`
	Login    string `gorm:"not null" json:"login"`
	Name     string `json:"name"`
	Birthday Date   `gorm:"type:date" json:"birthday"`
}
