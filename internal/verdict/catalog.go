package verdict

var catalog = map[Kind]Record{
	Fake: {
		Verdict:    Fake,
		Confidence: 87,
		Signals: []Signal{
			{Type: "emotional", Text: "URGENT! BREAKING NEWS!", Confidence: 95},
			{Type: "source", Text: "Unverified source with no credibility", Confidence: 82},
			{Type: "factual", Text: "Contradicts established facts", Confidence: 78},
			{Type: "bias", Text: "Strong political bias detected", Confidence: 71},
		},
		SupportingEvidence: []Evidence{
			{Platform: "Twitter/X", URL: "#", Title: "Fact-check by @snopes", Type: "debunk"},
			{Platform: "Reddit", URL: "#", Title: "Community discussion", Type: "discussion"},
			{Platform: "Reuters", URL: "#", Title: "Official statement", Type: "official"},
		},
		Explanation: "This content shows multiple indicators of fake news including emotional manipulation, unverified sources, and factual inconsistencies.",
	},
	Real: {
		Verdict:    Real,
		Confidence: 92,
		Signals: []Signal{
			{Type: "source", Text: "Verified news organization with good reputation", Confidence: 94},
			{Type: "factual", Text: "Information aligns with established facts", Confidence: 89},
			{Type: "bias", Text: "Minimal bias detected", Confidence: 85},
		},
		SupportingEvidence: []Evidence{
			{Platform: "AP News", URL: "#", Title: "Corroborating report", Type: "official"},
			{Platform: "BBC", URL: "#", Title: "Similar coverage", Type: "official"},
			{Platform: "FactCheck.org", URL: "#", Title: "Fact-check verification", Type: "verification"},
		},
		Explanation: "This content appears to be legitimate news from verified sources with factual accuracy and minimal bias.",
	},
	Uncertain: {
		Verdict:    Uncertain,
		Confidence: 58,
		Signals: []Signal{
			{Type: "source", Text: "Mixed source credibility", Confidence: 65},
			{Type: "factual", Text: "Some claims need verification", Confidence: 62},
			{Type: "bias", Text: "Moderate bias present", Confidence: 55},
		},
		SupportingEvidence: []Evidence{
			{Platform: "Wikipedia", URL: "#", Title: "Background information", Type: "reference"},
			{Platform: "Reddit", URL: "#", Title: "Community analysis", Type: "discussion"},
		},
		Explanation: "This content requires additional verification. Some claims appear credible while others need further fact-checking.",
	},
}

// Archetype returns a copy of the canned record for kind. Unknown kinds map
// to the Uncertain archetype.
func Archetype(kind Kind) Record {
	rec, ok := catalog[kind]
	if !ok {
		rec = catalog[Uncertain]
	}
	return rec.Clone()
}
