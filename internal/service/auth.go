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
	"blogapi/internal/token"
)

type AuthService struct {
	Users    *repo.UserRepo
	Tokens   *token.Service
	Producer *events.Producer
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            models.Role
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*PublicUser, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	exists, err := s.Users.EmailExists(in.Email)
	if err != nil {
		l.Error("register failed", "error", err)
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
		l.Error("register failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: pwHash,
		Role:         role,
	}
	if err := s.Users.Create(&user); err != nil {
		l.Error("register failed", "error", err)
		return nil, err
	}

	publish(ctx, s.Producer, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]interface{}{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	})

	return publicUser(&user), nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	user, err := s.Users.ByEmail(email)
	if err != nil {
		return "", err
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login failed", "reason", "password mismatch")
		return "", apperr.ErrInvalidCredentials
	}

	signed, err := s.Tokens.Issue(user.Name, user.Email, user.Role)
	if err != nil {
		l.Error("login failed", "error", err)
		return "", err
	}

	publish(ctx, s.Producer, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]interface{}{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	})

	return signed, nil
}
