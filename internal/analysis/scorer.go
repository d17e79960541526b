package analysis

import (
	"strings"

	"github.com/fakenewsdetect/backend/internal/verdict"
)

var (
	fakeIndicators = []string{"urgent", "breaking", "shocking", "you won't believe", "doctors hate this"}
	realIndicators = []string{"verified", "confirmed", "official", "according to sources"}
)

// Scores counts how many distinct indicator phrases of each bucket appear.
type Scores struct {
	Fake int
	Real int
}

// Normalize joins title and content the way the scorer reads them.
func Normalize(title, content string) string {
	return strings.ToLower(title + " " + content)
}

// Score counts indicator presence in already normalized text. A phrase
// contributes at most once however often it repeats.
func Score(text string) Scores {
	return Scores{
		Fake: countPresent(text, fakeIndicators),
		Real: countPresent(text, realIndicators),
	}
}

// Kind maps the scores to a verdict; ties, including 0-0, are Uncertain.
func (s Scores) Kind() verdict.Kind {
	switch {
	case s.Fake > s.Real:
		return verdict.Fake
	case s.Real > s.Fake:
		return verdict.Real
	default:
		return verdict.Uncertain
	}
}

// Classify scores a title/content pair and returns the matching archetype.
func Classify(title, content string) verdict.Record {
	return verdict.Archetype(Score(Normalize(title, content)).Kind())
}

func countPresent(text string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(text, p) {
			n++
		}
	}
	return n
}
