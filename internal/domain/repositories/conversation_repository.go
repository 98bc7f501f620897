package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/wobblehealth/checkin-api/internal/domain/entities"
)

// ConversationRepository defines the interface for conversation data access
type ConversationRepository interface {
	// Create stores a new conversation
	Create(ctx context.Context, conversation *entities.Conversation) error

	// FindByUserID returns a user's conversations, newest first
	FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entities.Conversation, error)
}
