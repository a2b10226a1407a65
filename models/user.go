package models

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleTenant Role = "tenant"
)

// QuietHours suppresses external channels between Start and End ("HH:MM").
// The window may wrap midnight, e.g. 22:00-07:00.
type QuietHours struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Start   string `bson:"start" json:"start" binding:"omitempty,clock"`
	End     string `bson:"end" json:"end" binding:"omitempty,clock"`
}

// NotificationPreferences switches each external channel per notification type.
// In-app records are always created.
type NotificationPreferences struct {
	Email      map[NotificationType]bool `bson:"email" json:"email"`
	Push       map[NotificationType]bool `bson:"push" json:"push"`
	QuietHours QuietHours                `bson:"quietHours" json:"quietHours"`
}

// DefaultPreferences enables every type on every channel with quiet hours off.
func DefaultPreferences() NotificationPreferences {
	prefs := NotificationPreferences{
		Email: map[NotificationType]bool{},
		Push:  map[NotificationType]bool{},
	}
	for _, t := range NotificationTypes {
		prefs.Email[t] = true
		prefs.Push[t] = true
	}
	return prefs
}

// User is either an admin or a tenant.
type User struct {
	ID           string                  `bson:"id" json:"id"`
	Name         string                  `bson:"name" json:"name"`
	Email        string                  `bson:"email" json:"email"`
	Phone        string                  `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string                  `bson:"passwordHash" json:"-"`
	Role         Role                    `bson:"role" json:"role"`
	RoomID       string                  `bson:"roomId,omitempty" json:"roomId,omitempty"`
	FCMToken     string                  `bson:"fcmToken,omitempty" json:"-"`
	Preferences  NotificationPreferences `bson:"notificationPreferences" json:"notificationPreferences"`
	CreatedAt    time.Time               `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time               `bson:"updatedAt" json:"updatedAt"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type FCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
