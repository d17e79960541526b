// Package verdict holds the classification outcomes returned by the analysis
// pipeline and the static catalog of archetype records.
package verdict

import "fmt"

type Kind string

const (
	Real      Kind = "Real"
	Fake      Kind = "Fake"
	Uncertain Kind = "Uncertain"
)

// Kinds lists every verdict in catalog order.
var Kinds = []Kind{Real, Fake, Uncertain}

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case Real, Fake, Uncertain:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown verdict %q", s)
	}
}

type Signal struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	Confidence int    `json:"confidence"`
}

type Evidence struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Type     string `json:"type"`
}

// Record is the result of one analysis.
type Record struct {
	Verdict            Kind       `json:"verdict"`
	Confidence         int        `json:"confidence"`
	Signals            []Signal   `json:"signals"`
	SupportingEvidence []Evidence `json:"supportingEvidence"`
	Explanation        string     `json:"explanation"`
}

// Clone returns a deep copy so callers can never alter a catalog entry.
func (r Record) Clone() Record {
	out := r
	out.Signals = append([]Signal(nil), r.Signals...)
	out.SupportingEvidence = append([]Evidence(nil), r.SupportingEvidence...)
	return out
}
