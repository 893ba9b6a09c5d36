package models

import (
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPublished Status = "PUBLISHED"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         Role   `gorm:"not null"                 json:"role"`
}

type Post struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string    `gorm:"not null"                 json:"title"`
	Body     string    `gorm:"not null"                 json:"body"`
	Status   Status    `gorm:"not null"                 json:"status"`
	UserID   uint      `gorm:"index;not null"           json:"user_id"`
	ImageURL string    `json:"image_url,omitempty"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Body      string    `gorm:"not null"                 json:"body"`
	CreatedAt time.Time `gorm:"not null"                 json:"created_at"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	PostID    uint      `gorm:"index;not null"           json:"post_id"`
}
