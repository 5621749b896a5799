package models

// FriendshipStatus represents the status of a friendship edge.
type FriendshipStatus string

const (
	// FriendshipStatusPending indicates an unconfirmed friendship request.
	FriendshipStatusPending FriendshipStatus = "pending"
	// FriendshipStatusConfirmed indicates the counterpart accepted the request.
	FriendshipStatusConfirmed FriendshipStatus = "confirmed"
)

// Friendship is a directed edge from UserID to FriendID carrying a status.
// The edge is not mirrored: adding (a, b) says nothing about (b, a).
type Friendship struct {
	UserID   uint             `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	FriendID uint             `gorm:"primaryKey;autoIncrement:false" json:"friendId"`
	Status   FriendshipStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}
