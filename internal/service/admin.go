package service

import (
	"context"
	"fmt"

	"blogapi/internal/apperr"
	"blogapi/internal/events"
	"blogapi/internal/hash"
	"blogapi/internal/logging"
	"blogapi/internal/models"
	"blogapi/internal/repo"
)

type AdminService struct {
	Users    *repo.UserRepo
	Producer *events.Producer
}

// RegisterAdmin creates another ADMIN account. The role gate lives in the
// router; by the time this runs the caller is already a verified admin.
func (s *AdminService) RegisterAdmin(ctx context.Context, in RegisterInput) (*PublicUser, error) {
	l := logging.FromContext(ctx).With("svc", "admin.register")

	exists, err := s.Users.EmailExists(in.Email)
	if err != nil {
		l.Error("register admin failed", "error", err)
		return nil, err
	}
	if exists {
		return nil, apperr.ErrDuplicateEmail
	}

	if in.Password != in.ConfirmPassword {
		return nil, apperr.ErrPasswordMismatch
	}

	pwHash, err := hash.HashPassword(in.Password)
	if err != nil {
		l.Error("register admin failed", "error", err)
		return nil, err
	}

	admin := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: pwHash,
		Role:         models.RoleAdmin,
	}
	if err := s.Users.Create(&admin); err != nil {
		l.Error("register admin failed", "error", err)
		return nil, err
	}

	publish(ctx, s.Producer, events.TopicUserEvents, fmt.Sprint(admin.ID), map[string]interface{}{
		"type":   "admin_registered",
		"userID": admin.ID,
		"email":  admin.Email,
	})

	return publicUser(&admin), nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "admin.delete_user", "userID", id)

	user, err := s.Users.ByID(id)
	if err != nil {
		return err
	}
	if err := s.Users.Delete(user); err != nil {
		l.Error("delete user failed", "error", err)
		return err
	}

	publish(ctx, s.Producer, events.TopicUserEvents, fmt.Sprint(id), map[string]interface{}{
		"type":   "user_deleted",
		"userID": id,
	})

	return nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]PublicUser, error) {
	users, err := s.Users.All()
	if err != nil {
		return nil, err
	}

	out := make([]PublicUser, len(users))
	for i := range users {
		out[i] = *publicUser(&users[i])
	}
	return out, nil
}
