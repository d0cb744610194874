package feedback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// NeutralScore is what Average returns when the ledger is empty or unreadable.
// Feedback is an optimization signal, not a correctness dependency, so a bad
// ledger degrades to neutral instead of failing the caller.
const NeutralScore = 3.0

// Entry is one recorded human judgment. Decision is only set on the chain-walk
// path (approve/edit/regenerate); the API path records score and subject only.
type Entry struct {
	Subject   string    `json:"subject"`
	Decision  string    `json:"decision,omitempty"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// Ledger is an append-only JSON file of feedback entries. Appends are
// serialized through a mutex so concurrent full-auto API calls keep
// timestamps monotonic without external locking.
type Ledger struct {
	path string
	mu   sync.Mutex
}

func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Append records the entry. The entry timestamp is assigned at append time
// and clamped so it never precedes the last recorded one.
func (l *Ledger) Append(e Entry) error {
	if e.Score < 1 || e.Score > 5 {
		return fmt.Errorf("feedback score %d out of range 1..5", e.Score)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.load()
	e.Timestamp = time.Now().UTC()
	if n := len(entries); n > 0 && entries[n-1].Timestamp.After(e.Timestamp) {
		e.Timestamp = entries[n-1].Timestamp
	}
	entries = append(entries, e)

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create feedback dir: %v", err)
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode feedback log: %v", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write feedback log: %v", err)
	}
	return nil
}

// Average returns the arithmetic mean of all recorded scores, or NeutralScore
// when the ledger is missing, malformed, or holds no valid scores.
func (l *Ledger) Average() float64 {
	l.mu.Lock()
	entries := l.load()
	l.mu.Unlock()

	sum, count := 0, 0
	for _, e := range entries {
		if e.Score >= 1 && e.Score <= 5 {
			sum += e.Score
			count++
		}
	}
	if count == 0 {
		return NeutralScore
	}
	return float64(sum) / float64(count)
}

// Entries returns all well-formed entries, oldest first.
func (l *Ledger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

// Stats summarizes the ledger for reporting.
type Stats struct {
	Count     int
	Average   float64
	Decisions map[string]int
}

func (l *Ledger) Stats() Stats {
	entries := l.Entries()
	s := Stats{Average: NeutralScore, Decisions: map[string]int{}}
	sum := 0
	for _, e := range entries {
		if e.Score < 1 || e.Score > 5 {
			continue
		}
		s.Count++
		sum += e.Score
		if e.Decision != "" {
			s.Decisions[e.Decision]++
		}
	}
	if s.Count > 0 {
		s.Average = float64(sum) / float64(s.Count)
	}
	return s
}

// load reads the ledger file, degrading to empty on any problem. A corrupt
// ledger must never abort the caller.
func (l *Ledger) load() []Entry {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", l.path).Msg("Failed to read feedback log, treating as empty")
		}
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warn().Err(err).Str("path", l.path).Msg("Feedback log is corrupted, treating as empty")
		return nil
	}
	return entries
}
