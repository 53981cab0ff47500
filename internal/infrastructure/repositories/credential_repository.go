package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// CredentialRepositoryImpl implements domain.CredentialRepository using Redis.
// SETNX on the credential jti gives the exactly-once redemption guarantee even
// when multiple tabs race the same custom token.
type CredentialRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCredentialRepository creates a new credential redemption repository. The
// ttl only needs to outlive the custom token's own expiry.
func NewCredentialRepository(client *redis.Client, ttl time.Duration) domain.CredentialRepository {
	return &CredentialRepositoryImpl{
		client: client,
		prefix: "credential:redeemed:",
		ttl:    ttl,
	}
}

// MarkRedeemed implements domain.CredentialRepository
func (r *CredentialRepositoryImpl) MarkRedeemed(ctx context.Context, jti string) (bool, error) {
	return r.client.SetNX(ctx, r.prefix+jti, 1, r.ttl).Result()
}
