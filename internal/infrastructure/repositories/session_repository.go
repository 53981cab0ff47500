package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using Redis
type SessionRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client, ttl time.Duration) domain.SessionRepository {
	return &SessionRepositoryImpl{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	key := r.prefix + session.ID
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return err
	}

	// secondary index so logout-everywhere and account deletion can revoke
	// all of a subject's sessions
	subjectKey := r.subjectKey(session.SubjectID)
	if err := r.client.SAdd(ctx, subjectKey, session.ID).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, subjectKey, r.ttl).Err()
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	key := r.prefix + sessionID
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if session.ExpiresAt.Before(time.Now()) {
		r.client.Del(ctx, key)
		return nil, domain.ErrSessionExpired
	}

	return &session, nil
}

// Delete implements domain.SessionRepository
func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	session, err := r.FindByID(ctx, sessionID)
	if err == nil {
		r.client.SRem(ctx, r.subjectKey(session.SubjectID), sessionID)
	}
	return r.client.Del(ctx, r.prefix+sessionID).Err()
}

// DeleteBySubject implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteBySubject(ctx context.Context, subjectID string) error {
	subjectKey := r.subjectKey(subjectID)
	ids, err := r.client.SMembers(ctx, subjectKey).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	for _, id := range ids {
		if err := r.client.Del(ctx, r.prefix+id).Err(); err != nil {
			return err
		}
	}
	return r.client.Del(ctx, subjectKey).Err()
}

func (r *SessionRepositoryImpl) subjectKey(subjectID string) string {
	return "session:subject:" + subjectID
}
