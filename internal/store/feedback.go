package store

import "sync"

type Sentiment string

const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
)

type FeedbackEntry struct {
	ID         int64     `json:"id"`
	AnalysisID string    `json:"analysisId"`
	Feedback   Sentiment `json:"feedback"`
	Comment    string    `json:"comment,omitempty"`
	Timestamp  string    `json:"timestamp"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"userAgent"`
}

type FeedbackStats struct {
	Total    int
	Positive int
	Negative int
	// Satisfaction is positive/total as a percentage with one decimal; 0
	// when there is no feedback.
	Satisfaction float64
}

type FeedbackStore struct {
	mu      sync.RWMutex
	entries []FeedbackEntry
	ids     idSource
}

func NewFeedbackStore(opts ...Option) *FeedbackStore {
	o := buildOptions(opts)
	return &FeedbackStore{ids: idSource{now: o.now}}
}

// Append assigns an id, and a timestamp when the entry has none, then
// stores the entry.
func (s *FeedbackStore) Append(e FeedbackEntry) FeedbackEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.ids.next()
	if e.Timestamp == "" {
		e.Timestamp = s.ids.now().UTC().Format(ISOLayout)
	}
	s.entries = append(s.entries, e)
	return e
}

// List pages through feedback in insertion order.
func (s *FeedbackStore) List(page, limit int) ([]FeedbackEntry, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return paginate(s.entries, page, limit), len(s.entries)
}

func (s *FeedbackStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *FeedbackStore) Stats() FeedbackStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := FeedbackStats{Total: len(s.entries)}
	for _, e := range s.entries {
		switch e.Feedback {
		case Positive:
			st.Positive++
		case Negative:
			st.Negative++
		}
	}
	if st.Total > 0 {
		st.Satisfaction = round1(float64(st.Positive) / float64(st.Total) * 100)
	}
	return st
}
