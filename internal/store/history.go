package store

import (
	"sort"
	"sync"
	"time"

	"github.com/fakenewsdetect/backend/internal/analysis"
	"github.com/fakenewsdetect/backend/internal/verdict"
)

const DefaultHistoryCapacity = 100

type HistoryEntry struct {
	ID         int64              `json:"id"`
	AnalysisID string             `json:"analysisId"`
	Verdict    verdict.Kind       `json:"verdict"`
	Confidence float64            `json:"confidence"`
	InputType  analysis.InputType `json:"inputType"`
	InputData  map[string]any     `json:"inputData"`
	Results    map[string]any     `json:"results"`
	Timestamp  string             `json:"timestamp"`
	IP         string             `json:"ip"`
	UserAgent  string             `json:"userAgent"`

	savedAt time.Time
}

type HistoryStats struct {
	TotalAnalyses     int
	Verdicts          map[verdict.Kind]int
	AverageConfidence float64
	InputTypes        map[analysis.InputType]int
}

// HistoryStore keeps the most recent saved analyses, dropping the oldest
// once capacity is exceeded.
type HistoryStore struct {
	mu       sync.RWMutex
	entries  []HistoryEntry
	capacity int
	ids      idSource
}

func NewHistoryStore(opts ...Option) *HistoryStore {
	o := buildOptions(opts)
	return &HistoryStore{
		capacity: o.capacity,
		ids:      idSource{now: o.now},
	}
}

// Append stamps and stores e, then trims to capacity. Both happen under one
// lock so concurrent saves can never overshoot the cap or drop a new entry.
func (s *HistoryStore) Append(e HistoryEntry) HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.ids.next()
	e.savedAt = s.ids.now()
	e.Timestamp = e.savedAt.UTC().Format(ISOLayout)
	s.entries = append(s.entries, e)

	if overflow := len(s.entries) - s.capacity; overflow > 0 {
		kept := make([]HistoryEntry, s.capacity)
		copy(kept, s.entries[overflow:])
		s.entries = kept
	}
	return e
}

// List pages through history newest first.
func (s *HistoryStore) List(page, limit int) ([]HistoryEntry, int) {
	s.mu.RLock()
	sorted := make([]HistoryEntry, len(s.entries))
	copy(sorted, s.entries)
	s.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].savedAt.Equal(sorted[j].savedAt) {
			return sorted[i].savedAt.After(sorted[j].savedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})
	return paginate(sorted, page, limit), len(sorted)
}

// Remove deletes the entry with id and reports whether it existed.
func (s *HistoryStore) Remove(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *HistoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *HistoryStore) Stats() HistoryStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := HistoryStats{
		TotalAnalyses: len(s.entries),
		Verdicts:      make(map[verdict.Kind]int, len(verdict.Kinds)),
		InputTypes:    make(map[analysis.InputType]int, len(analysis.InputTypes)),
	}
	for _, k := range verdict.Kinds {
		st.Verdicts[k] = 0
	}
	for _, t := range analysis.InputTypes {
		st.InputTypes[t] = 0
	}

	var sum float64
	for _, e := range s.entries {
		st.Verdicts[e.Verdict]++
		st.InputTypes[e.InputType]++
		sum += e.Confidence
	}
	if st.TotalAnalyses > 0 {
		st.AverageConfidence = round1(sum / float64(st.TotalAnalyses))
	}
	return st
}
