package service

import (
	"context"
	"time"

	"blogapi/internal/events"
	"blogapi/internal/logging"
	"blogapi/internal/models"
)

// PublicUser is the outward projection of an account. The password hash
// never leaves the service layer.
type PublicUser struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

func publicUser(u *models.User) *PublicUser {
	return &PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// publish sends a domain event without letting broker trouble fail the
// request. A nil producer disables events entirely.
func publish(ctx context.Context, p *events.Producer, topic, key string, event map[string]interface{}) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "error", err)
	}
}
