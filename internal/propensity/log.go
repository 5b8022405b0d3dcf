package propensity

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aayoawoyemi/Ori-Mnemos/internal/fusion"
)

// Log is an append-only JSONL event stream. A single mutex serializes
// writes; an append-only O_APPEND handle is sufficient here since records
// are never edited or reordered, unlike the corpus's note files.
type Log struct {
	mu   sync.Mutex
	file *os.File
}

// Open opens (creating if necessary) the log file for appending.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("propensity: open log: %w", err)
	}
	return &Log{file: f}, nil
}

// Close closes the underlying file.
func (l *Log) Close() error { return l.file.Close() }

// Append writes one served-query event. The PropensityAtServe field on
// every entry is left at 0; propensities are computed post-hoc by
// Compute, scanning the accumulated log.
func (l *Log) Append(query, intentLabel string, served []fusion.Served) error {
	entries := make([]Entry, len(served))
	for i, s := range served {
		entries[i] = Entry{Title: s.Title, Rank: i, Score: s.Score, WasExploration: s.Explored}
	}
	ev := Event{ID: uuid.NewString(), Timestamp: time.Now(), Query: query, Intent: intentLabel, Entries: entries}

	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("propensity: marshal event: %w", err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.file.Write(line); err != nil {
		return fmt.Errorf("propensity: append event: %w", err)
	}
	return nil
}
