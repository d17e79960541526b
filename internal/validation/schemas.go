package validation

import (
	"strings"

	"github.com/fakenewsdetect/backend/internal/analysis"
)

var TextSchema = NewSchema().
	Required("title", String{Max: 500}).
	Required("content", String{Max: 10000})

var URLSchema = NewSchema().
	Required("url", String{URI: true})

var FeedbackSchema = NewSchema().
	Required("analysisId", String{}).
	Required("feedback", String{OneOf: []string{"positive", "negative"}}).
	Optional("comment", String{Max: 500}).
	Optional("timestamp", String{ISODate: true})

var SaveAnalysisSchema = NewSchema().
	Required("analysisId", String{}).
	Required("verdict", String{OneOf: []string{"Real", "Fake", "Uncertain"}}).
	Required("confidence", Range(0, 100)).
	Required("inputType", String{OneOf: []string{"text", "url", "image"}}).
	Required("inputData", Object{}).
	Required("results", Object{})

// TextInput validates a text analysis payload.
func TextInput(payload map[string]any) (analysis.TextInput, error) {
	v, err := TextSchema.Validate(payload)
	if err != nil {
		return analysis.TextInput{}, err
	}
	return analysis.TextInput{Title: v.String("title"), Content: v.String("content")}, nil
}

// URLInput validates a URL analysis payload.
func URLInput(payload map[string]any) (analysis.URLInput, error) {
	v, err := URLSchema.Validate(payload)
	if err != nil {
		return analysis.URLInput{}, err
	}
	return analysis.URLInput{URL: v.String("url")}, nil
}

// ImageError is the message for a rejected upload content type.
const ImageError = "Only image files are allowed"

// IsImageType reports whether a MIME type is acceptable for image analysis.
func IsImageType(mimeType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), "image/")
}
