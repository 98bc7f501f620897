package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/wobblehealth/checkin-api/internal/domain/entities"
)

// ProfileRepository defines the interface for caregiver profile data access.
// Profiles are provisioned by the upstream auth system; this service only
// resolves them.
type ProfileRepository interface {
	// FindByID finds a profile by ID
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
}
