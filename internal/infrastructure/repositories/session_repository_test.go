package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func newTestSession(id, subjectID string) *domain.Session {
	now := time.Now()
	return &domain.Session{
		ID:        id,
		SubjectID: subjectID,
		Email:     "student@example.com",
		Provider:  domain.ProviderPassword,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestSessionRepository_CreateAndFind(t *testing.T) {
	repo := NewSessionRepository(newTestRedis(t), time.Hour)
	ctx := context.Background()

	session := newTestSession("sess_1", "subject-1")
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repo.FindByID(ctx, "sess_1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if got.SubjectID != "subject-1" || got.Email != "student@example.com" {
		t.Errorf("unexpected session %+v", got)
	}
}

func TestSessionRepository_FindMissing(t *testing.T) {
	repo := NewSessionRepository(newTestRedis(t), time.Hour)

	if _, err := repo.FindByID(context.Background(), "sess_missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionRepository_FindExpired(t *testing.T) {
	repo := NewSessionRepository(newTestRedis(t), time.Hour)
	ctx := context.Background()

	session := newTestSession("sess_1", "subject-1")
	session.ExpiresAt = time.Now().Add(-time.Minute)
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := repo.FindByID(ctx, "sess_1"); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	// the expired record is reaped
	if _, err := repo.FindByID(ctx, "sess_1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after reap, got %v", err)
	}
}

func TestSessionRepository_Delete(t *testing.T) {
	repo := NewSessionRepository(newTestRedis(t), time.Hour)
	ctx := context.Background()

	if err := repo.Create(ctx, newTestSession("sess_1", "subject-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Delete(ctx, "sess_1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, "sess_1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	// deleting a missing session is not an error
	if err := repo.Delete(ctx, "sess_missing"); err != nil {
		t.Fatalf("delete of missing session failed: %v", err)
	}
}

func TestSessionRepository_DeleteBySubject(t *testing.T) {
	repo := NewSessionRepository(newTestRedis(t), time.Hour)
	ctx := context.Background()

	if err := repo.Create(ctx, newTestSession("sess_1", "subject-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, newTestSession("sess_2", "subject-1")); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, newTestSession("sess_other", "subject-2")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.DeleteBySubject(ctx, "subject-1"); err != nil {
		t.Fatalf("delete by subject failed: %v", err)
	}

	if _, err := repo.FindByID(ctx, "sess_1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("sess_1 survived revocation: %v", err)
	}
	if _, err := repo.FindByID(ctx, "sess_2"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("sess_2 survived revocation: %v", err)
	}
	// other subjects are untouched
	if _, err := repo.FindByID(ctx, "sess_other"); err != nil {
		t.Errorf("unrelated session revoked: %v", err)
	}
}
