package models

import "time"

// User represents an account. Email is the login identifier.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(254);not null"`
	Password    string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialised
	IsStaff     bool      `json:"is_staff" gorm:"not null;default:false"`
	IsSuperuser bool      `json:"is_superuser" gorm:"not null;default:false"`
	IsActive    bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may act on resources owned by others.
func (u *User) IsAdmin() bool {
	return u.IsStaff || u.IsSuperuser
}
