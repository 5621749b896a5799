package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"filmgraph/internal/models"
)

// FriendshipRepository manages the directed friendship edges. Existence of the
// endpoints is the service layer's concern; this store only writes edges.
type FriendshipRepository interface {
	// Upsert creates the (userID, friendID) edge or overwrites its status.
	Upsert(ctx context.Context, userID, friendID uint, status models.FriendshipStatus) error
	// Remove deletes the edge; removing a non-existent edge is a no-op.
	Remove(ctx context.Context, userID, friendID uint) error
	// FriendIDs returns the ids userID has an edge toward.
	FriendIDs(ctx context.Context, userID uint) ([]uint, error)
	// CommonFriendIDs returns the intersection of both users' friend id sets.
	CommonFriendIDs(ctx context.Context, userID, otherID uint) ([]uint, error)
}

// friendshipRepository implements FriendshipRepository
type friendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository creates a new friendship repository backed by the database.
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) Upsert(ctx context.Context, userID, friendID uint, status models.FriendshipStatus) error {
	edge := models.Friendship{UserID: userID, FriendID: friendID, Status: status}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status"}),
		}).
		Create(&edge).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendshipRepository) Remove(ctx context.Context, userID, friendID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&models.Friendship{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *friendshipRepository) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Order("friend_id").
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *friendshipRepository) CommonFriendIDs(ctx context.Context, userID, otherID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Raw(`SELECT f1.friend_id FROM friendships f1
		     JOIN friendships f2 ON f1.friend_id = f2.friend_id
		     WHERE f1.user_id = ? AND f2.user_id = ?
		     ORDER BY f1.friend_id`, userID, otherID).
		Scan(&ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
