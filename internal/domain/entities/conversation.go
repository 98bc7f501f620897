package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Conversation is a stored check-in session: the formatted transcript plus
// whatever the analysis provider generated for it.
type Conversation struct {
	ID               uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	ConversationID   string         `json:"conversation_id" gorm:"type:varchar(255);index"`
	Summary          string         `json:"summary" gorm:"type:text"`
	ExtractedMessage string         `json:"extracted_message,omitempty" gorm:"type:text"`
	LangflowResponse datatypes.JSON `json:"langflow_response,omitempty" gorm:"type:jsonb"`
	CreatedAt        time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Conversation) TableName() string {
	return "conversations"
}

// NewConversation creates a new conversation for a user
func NewConversation(userID uuid.UUID) *Conversation {
	return &Conversation{
		ID:             uuid.New(),
		UserID:         userID,
		ConversationID: uuid.NewString(),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}
