package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when a profile lookup finds nothing
var ErrProfileNotFound = errors.New("profile not found")

// Profile is a caregiver account: who receives the SMS summaries and which
// child the check-ins belong to.
type Profile struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email       string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	ChildName   string    `json:"child_name,omitempty" gorm:"type:varchar(255)"`
	PhoneNumber string    `json:"phone_number,omitempty" gorm:"type:varchar(32)"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}
