// Package analysis turns validated analysis requests into verdict records.
//
// Analyzer is the seam where a real inference backend would plug in; the
// only implementation shipped is MockAnalyzer, which answers with the static
// archetypes after a simulated processing delay.
package analysis

import (
	"context"
	"time"

	"github.com/fakenewsdetect/backend/internal/verdict"
)

type InputType string

const (
	InputText  InputType = "text"
	InputURL   InputType = "url"
	InputImage InputType = "image"
)

var InputTypes = []InputType{InputText, InputURL, InputImage}

type TextInput struct {
	Title   string
	Content string
}

type URLInput struct {
	URL string
}

type ImageInput struct {
	Data     []byte
	MimeType string
}

type Analyzer interface {
	AnalyzeText(ctx context.Context, in TextInput) (verdict.Record, error)
	AnalyzeURL(ctx context.Context, in URLInput) (verdict.Record, error)
	AnalyzeImage(ctx context.Context, in ImageInput) (verdict.Record, error)
}

// Delays is the simulated processing time per input type.
type Delays struct {
	Text  time.Duration
	URL   time.Duration
	Image time.Duration
}

func DefaultDelays() Delays {
	return Delays{
		Text:  2 * time.Second,
		URL:   2 * time.Second,
		Image: 3 * time.Second,
	}
}

type MockAnalyzer struct {
	delays Delays
}

func NewMockAnalyzer(delays Delays) *MockAnalyzer {
	return &MockAnalyzer{delays: delays}
}

func (a *MockAnalyzer) AnalyzeText(ctx context.Context, in TextInput) (verdict.Record, error) {
	if err := wait(ctx, a.delays.Text); err != nil {
		return verdict.Record{}, err
	}
	return Classify(in.Title, in.Content), nil
}

// AnalyzeURL does not fetch the page; every URL gets the Fake archetype.
func (a *MockAnalyzer) AnalyzeURL(ctx context.Context, _ URLInput) (verdict.Record, error) {
	if err := wait(ctx, a.delays.URL); err != nil {
		return verdict.Record{}, err
	}
	return verdict.Archetype(verdict.Fake), nil
}

// AnalyzeImage performs no OCR; every image gets the Uncertain archetype.
func (a *MockAnalyzer) AnalyzeImage(ctx context.Context, _ ImageInput) (verdict.Record, error) {
	if err := wait(ctx, a.delays.Image); err != nil {
		return verdict.Record{}, err
	}
	return verdict.Archetype(verdict.Uncertain), nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
