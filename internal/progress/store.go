package progress

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// FileStore implements domain.ProgressStore over JSON blobs in a data
// directory, one file per persisted key. Readers tolerate missing or corrupt
// values by falling back to the documented initial state.
type FileStore struct {
	dir string
}

// NewFileStore creates the store, ensuring the data directory exists
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create progress dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// LoadStats implements domain.ProgressStore
func (f *FileStore) LoadStats(certID string) domain.ProgressStats {
	stats := Zero()
	if !f.load(f.statsPath(certID), &stats) {
		return Zero()
	}
	if stats.DomainProgress == nil {
		stats.DomainProgress = make(map[string]domain.DomainProgress)
	}
	if stats.UnlockedAchievements == nil {
		stats.UnlockedAchievements = []string{}
	}
	return stats
}

// SaveStats implements domain.ProgressStore
func (f *FileStore) SaveStats(certID string, stats domain.ProgressStats) error {
	return f.save(f.statsPath(certID), stats)
}

// LoadFlashcards implements domain.ProgressStore
func (f *FileStore) LoadFlashcards(certID string) domain.FlashcardProgress {
	progress := ZeroFlashcards()
	if !f.load(f.flashcardPath(certID), &progress) {
		return ZeroFlashcards()
	}
	if progress.CardsKnown == nil {
		progress.CardsKnown = []string{}
	}
	if progress.CardsLearning == nil {
		progress.CardsLearning = []string{}
	}
	if progress.DeckProgress == nil {
		progress.DeckProgress = make(map[string]float64)
	}
	return progress
}

// SaveFlashcards implements domain.ProgressStore
func (f *FileStore) SaveFlashcards(certID string, progress domain.FlashcardProgress) error {
	return f.save(f.flashcardPath(certID), progress)
}

// AnalyticsOptOut implements domain.ProgressStore
func (f *FileStore) AnalyticsOptOut() bool {
	var optOut bool
	f.load(f.optOutPath(), &optOut)
	return optOut
}

// SetAnalyticsOptOut implements domain.ProgressStore
func (f *FileStore) SetAnalyticsOptOut(optOut bool) error {
	return f.save(f.optOutPath(), optOut)
}

// load reports whether v was populated from a readable, well-formed blob
func (f *FileStore) load(path string, v interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("PROGRESS_BLOB_CORRUPT: path=%s error=%v", path, err)
		return false
	}
	return true
}

// save writes via temp file + rename so a crash never leaves a torn blob
func (f *FileStore) save(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal progress blob: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write progress blob: %w", err)
	}
	return os.Rename(tmp, path)
}

func (f *FileStore) statsPath(certID string) string {
	return filepath.Join(f.dir, "stats_"+certID+".json")
}

func (f *FileStore) flashcardPath(certID string) string {
	return filepath.Join(f.dir, "flashcards_"+certID+".json")
}

func (f *FileStore) optOutPath() string {
	return filepath.Join(f.dir, "analytics_opt_out.json")
}

var _ domain.ProgressStore = (*FileStore)(nil)
