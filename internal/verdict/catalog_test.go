package verdict_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fakenewsdetect/backend/internal/verdict"
)

func TestArchetypeConfidence(t *testing.T) {
	tests := []struct {
		kind       verdict.Kind
		confidence int
		signals    int
		evidence   int
	}{
		{verdict.Fake, 87, 4, 3},
		{verdict.Real, 92, 3, 3},
		{verdict.Uncertain, 58, 3, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			rec := verdict.Archetype(tt.kind)
			require.Equal(t, tt.kind, rec.Verdict)
			require.Equal(t, tt.confidence, rec.Confidence)
			require.Len(t, rec.Signals, tt.signals)
			require.Len(t, rec.SupportingEvidence, tt.evidence)
			require.NotEmpty(t, rec.Explanation)
		})
	}
}

func TestArchetypeIsImmutable(t *testing.T) {
	rec := verdict.Archetype(verdict.Fake)
	rec.Confidence = 1
	rec.Signals[0].Text = "changed"
	rec.SupportingEvidence = append(rec.SupportingEvidence, verdict.Evidence{Platform: "x"})

	fresh := verdict.Archetype(verdict.Fake)
	require.Equal(t, 87, fresh.Confidence)
	require.Equal(t, "URGENT! BREAKING NEWS!", fresh.Signals[0].Text)
	require.Len(t, fresh.SupportingEvidence, 3)
}

func TestArchetypeUnknownFallsBackToUncertain(t *testing.T) {
	require.Equal(t, verdict.Uncertain, verdict.Archetype("nope").Verdict)
}

func TestParseKind(t *testing.T) {
	k, err := verdict.ParseKind("Real")
	require.NoError(t, err)
	require.Equal(t, verdict.Real, k)

	_, err = verdict.ParseKind("real")
	require.Error(t, err)
}
