package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wobblehealth/checkin-api/internal/domain/entities"
	"github.com/wobblehealth/checkin-api/internal/domain/repositories"
	"github.com/wobblehealth/checkin-api/pkg/jwt"
)

// profileCacheTTL bounds how long a resolved profile is served from Redis
// before hitting Postgres again.
const profileCacheTTL = 5 * time.Minute

// Service resolves bearer tokens and session cookies to caregiver profiles
type Service struct {
	profileRepo repositories.ProfileRepository
	jwtManager  *jwt.Manager
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewService constructs an auth service
func NewService(
	profileRepo repositories.ProfileRepository,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		profileRepo: profileRepo,
		jwtManager:  jwtManager,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ValidateSession resolves an access token to the owning profile. Profiles
// are cached briefly in Redis keyed by user id.
func (s *Service) ValidateSession(ctx context.Context, token string) (*entities.Profile, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	cacheKey := "profile:" + claims.UserID.String()
	if s.redisClient != nil {
		if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var profile entities.Profile
			if err := json.Unmarshal([]byte(cached), &profile); err == nil {
				return &profile, nil
			}
		}
	}

	profile, err := s.profileRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("session token resolved to unknown profile",
				zap.String("user_id", claims.UserID.String()),
				zap.Error(err),
			)
		}
		return nil, fmt.Errorf("failed to resolve profile: %w", err)
	}

	if s.redisClient != nil {
		if b, err := json.Marshal(profile); err == nil {
			s.redisClient.Set(ctx, cacheKey, b, profileCacheTTL)
		}
	}

	return profile, nil
}
