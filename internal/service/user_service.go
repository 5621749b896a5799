package service

import (
	"context"

	"filmgraph/internal/models"
	"filmgraph/internal/observability"
	"filmgraph/internal/repository"
	"filmgraph/internal/validation"
)

// UserService handles user accounts and the friendship graph.
type UserService struct {
	userRepo       repository.UserRepository
	friendshipRepo repository.FriendshipRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, friendshipRepo repository.FriendshipRepository) *UserService {
	return &UserService{userRepo: userRepo, friendshipRepo: friendshipRepo}
}

// CreateUser validates and stores the user. A blank display name falls back
// to the login before storage.
func (s *UserService) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validation.ValidateUser(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser replaces the stored user identified by user.ID.
func (s *UserService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validation.ValidateUser(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, user.ID)
}

// GetUser returns the user with the given id.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers returns every stored user.
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// DeleteUser removes the user together with their likes and friendship edges.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

// AddFriend writes a directed pending edge from userID to friendID. The edge
// is not mirrored; re-adding resets the status to pending.
func (s *UserService) AddFriend(ctx context.Context, userID, friendID uint) error {
	if err := s.requireUsers(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.friendshipRepo.Upsert(ctx, userID, friendID, models.FriendshipStatusPending); err != nil {
		return err
	}
	observability.FriendshipMutations.WithLabelValues("add").Inc()
	return nil
}

// ConfirmFriend marks the edge from userID to friendID as confirmed.
func (s *UserService) ConfirmFriend(ctx context.Context, userID, friendID uint) error {
	if err := s.requireUsers(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.friendshipRepo.Upsert(ctx, userID, friendID, models.FriendshipStatusConfirmed); err != nil {
		return err
	}
	observability.FriendshipMutations.WithLabelValues("confirm").Inc()
	return nil
}

// RemoveFriend deletes the directed edge from userID to friendID. Removing an
// absent edge is a no-op as long as both users exist.
func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if err := s.requireUsers(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.friendshipRepo.Remove(ctx, userID, friendID); err != nil {
		return err
	}
	observability.FriendshipMutations.WithLabelValues("remove").Inc()
	return nil
}

// GetFriends returns the users userID points at, resolved to full records.
// Ids that no longer resolve are skipped.
func (s *UserService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	exists, err := s.userRepo.ExistsByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", userID)
	}
	ids, err := s.friendshipRepo.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolveUsers(ctx, ids)
}

// GetCommonFriends returns users both userID and otherID point at.
func (s *UserService) GetCommonFriends(ctx context.Context, userID, otherID uint) ([]models.User, error) {
	if err := s.requireUsers(ctx, userID, otherID); err != nil {
		return nil, err
	}
	ids, err := s.friendshipRepo.CommonFriendIDs(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	return s.resolveUsers(ctx, ids)
}

func (s *UserService) resolveUsers(ctx context.Context, ids []uint) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			if models.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}

func (s *UserService) requireUsers(ctx context.Context, ids ...uint) error {
	for _, id := range ids {
		exists, err := s.userRepo.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return models.NewNotFoundError("User", id)
		}
	}
	return nil
}
