package progress

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// Syncer pushes local stats into the profile store without ever blocking
// gameplay. Failures are logged and dropped; the next session completion
// triggers sync again, which retries implicitly.
type Syncer struct {
	profiles domain.ProfileService
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewSyncer creates a new fire-and-forget progress syncer
func NewSyncer(profiles domain.ProfileService, timeout time.Duration) *Syncer {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Syncer{profiles: profiles, timeout: timeout}
}

// Sync launches one background merge-by-max push for the subject
func (s *Syncer) Sync(subjectID, certID string, stats domain.ProgressStats) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.profiles.SyncProgress(ctx, subjectID, certID, stats); err != nil {
			log.Printf("PROGRESS_SYNC_FAILED: subject_id=%s cert_id=%s error=%v", subjectID, certID, err)
		}
	}()
}

// Wait blocks until in-flight pushes finish. Tests and shutdown hooks use it.
func (s *Syncer) Wait() {
	s.wg.Wait()
}
