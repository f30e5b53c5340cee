package user

import "time"

type User struct {
	ID          string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	DisplayName string    `json:"display_name" gorm:"not null"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Role        string    `json:"role" gorm:"not null;default:'engineer'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Current is the ambient identity stamped onto created rows. It is passed
// explicitly into services instead of being read from global state.
type Current struct {
	ID          string
	DisplayName string
}
