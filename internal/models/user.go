package models

import "time"

// User is the internal identity anchor. It is created lazily the first time
// an externally-authenticated request arrives; AuthID is the opaque reference
// issued by the identity provider and is unique per user.
type User struct {
	ID        string    `json:"id"`
	AuthID    string    `json:"-"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
