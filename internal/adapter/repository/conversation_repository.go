package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wobblehealth/checkin-api/internal/domain/entities"
)

// ConversationRepository implements conversation persistence using GORM
type ConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{
		db: db,
	}
}

// Create stores a new conversation
func (r *ConversationRepository) Create(ctx context.Context, conversation *entities.Conversation) error {
	if err := r.db.WithContext(ctx).Create(conversation).Error; err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// FindByUserID returns a user's conversations, newest first
func (r *ConversationRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]entities.Conversation, error) {
	var conversations []entities.Conversation
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&conversations).Error; err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

