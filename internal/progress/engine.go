package progress

import (
	"log"
	"sync"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// Engine serializes progress mutations for one certification track. Every
// mutation persists synchronously to the local store before returning, so a
// crash loses at most one event's effect. Server sync is opportunistic and
// never blocks a mutation.
type Engine struct {
	certID string
	store  domain.ProgressStore
	syncer *Syncer

	mu         sync.Mutex
	stats      domain.ProgressStats
	flashcards domain.FlashcardProgress
	subjectID  string
}

// NewEngine loads persisted state and returns a ready engine. syncer may be
// nil when no session exists yet.
func NewEngine(certID string, store domain.ProgressStore, syncer *Syncer) *Engine {
	return &Engine{
		certID:     certID,
		store:      store,
		syncer:     syncer,
		stats:      store.LoadStats(certID),
		flashcards: store.LoadFlashcards(certID),
	}
}

// Stats returns a snapshot of the current stats
func (e *Engine) Stats() domain.ProgressStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clone(e.stats)
}

// Flashcards returns a snapshot of the current flashcard progress
func (e *Engine) Flashcards() domain.FlashcardProgress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneFlashcards(e.flashcards)
}

// HandleAuthEvent tracks the live session so session completions can sync.
// A sign-in also pushes the local state up immediately.
func (e *Engine) HandleAuthEvent(event domain.AuthEvent) {
	e.mu.Lock()
	switch event.State {
	case domain.StateSignedIn:
		e.subjectID = event.Session.SubjectID
	case domain.StateSignedOut:
		e.subjectID = ""
	}
	subject := e.subjectID
	stats := clone(e.stats)
	e.mu.Unlock()

	if subject != "" && e.syncer != nil {
		e.syncer.Sync(subject, e.certID, stats)
	}
}

// RecordCorrectAnswer applies a correct answer and returns any achievements
// unlocked by it
func (e *Engine) RecordCorrectAnswer(responseTimeSeconds float64) []Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := ApplyCorrectAnswer(e.stats, responseTimeSeconds)
	return e.commit(stats)
}

// RecordIncorrectAnswer applies an incorrect answer
func (e *Engine) RecordIncorrectAnswer() []Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()

	stats := ApplyIncorrectAnswer(e.stats)
	return e.commit(stats)
}

// CompleteSession records a finished quiz session and opportunistically syncs
// the merged state to the server copy when a session exists
func (e *Engine) CompleteSession(domainID string, correctCount, totalCount int) []Achievement {
	e.mu.Lock()
	stats := ApplySessionComplete(e.stats, domainID, correctCount, totalCount)
	granted := e.commit(stats)
	subject := e.subjectID
	snapshot := clone(e.stats)
	e.mu.Unlock()

	if subject != "" && e.syncer != nil {
		e.syncer.Sync(subject, e.certID, snapshot)
	}
	return granted
}

// MarkCardKnown moves a flashcard into the known set
func (e *Engine) MarkCardKnown(cardID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.flashcards.CardsLearning = remove(e.flashcards.CardsLearning, cardID)
	if !contains(e.flashcards.CardsKnown, cardID) {
		e.flashcards.CardsKnown = append(e.flashcards.CardsKnown, cardID)
		e.flashcards.CardsStudied++
	}
	e.persistFlashcards()
}

// MarkCardLearning moves a flashcard into the still-learning set
func (e *Engine) MarkCardLearning(cardID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.flashcards.CardsKnown = remove(e.flashcards.CardsKnown, cardID)
	if !contains(e.flashcards.CardsLearning, cardID) {
		e.flashcards.CardsLearning = append(e.flashcards.CardsLearning, cardID)
		e.flashcards.CardsStudied++
	}
	e.persistFlashcards()
}

// SetDeckProgress records the studied fraction for one deck, clamped to [0,1]
func (e *Engine) SetDeckProgress(deckID string, fraction float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	e.flashcards.DeckProgress[deckID] = fraction
	e.persistFlashcards()
}

// commit awards achievements, installs the new stats, and persists. Callers
// hold e.mu.
func (e *Engine) commit(stats domain.ProgressStats) []Achievement {
	stats, granted := Award(stats)
	e.stats = stats
	if err := e.store.SaveStats(e.certID, e.stats); err != nil {
		log.Printf("PROGRESS_PERSIST_FAILED: cert_id=%s error=%v", e.certID, err)
	}
	return granted
}

func (e *Engine) persistFlashcards() {
	if err := e.store.SaveFlashcards(e.certID, e.flashcards); err != nil {
		log.Printf("FLASHCARD_PERSIST_FAILED: cert_id=%s error=%v", e.certID, err)
	}
}

// cloneFlashcards detaches the snapshot's slices and map so callers cannot
// mutate engine state around the mutex
func cloneFlashcards(p domain.FlashcardProgress) domain.FlashcardProgress {
	out := p
	out.CardsKnown = append([]string(nil), p.CardsKnown...)
	out.CardsLearning = append([]string(nil), p.CardsLearning...)
	out.DeckProgress = make(map[string]float64, len(p.DeckProgress))
	for deck, fraction := range p.DeckProgress {
		out.DeckProgress[deck] = fraction
	}
	return out
}

func contains(list []string, v string) bool {
	for _, got := range list {
		if got == v {
			return true
		}
	}
	return false
}

func remove(list []string, v string) []string {
	out := list[:0]
	for _, got := range list {
		if got != v {
			out = append(out, got)
		}
	}
	return out
}
