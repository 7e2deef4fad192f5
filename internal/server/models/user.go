// Package models defines the server-side records shared by services and
// repositories.
package models

import "time"

// User is an account. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPatch names the mutable user fields; nil means "leave as is".
// Password, when set, must already be hashed.
type UserPatch struct {
	Username *string
	Email    *string
	Avatar   *string
	Password *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.Avatar == nil && p.Password == nil
}

// Apply copies the set fields of p onto u.
func (p UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
}
