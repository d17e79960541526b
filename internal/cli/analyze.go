package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakenewsdetect/backend/internal/analysis"
	"github.com/fakenewsdetect/backend/internal/validation"
	"github.com/fakenewsdetect/backend/internal/verdict"
)

var (
	analyzeTitle   string
	analyzeContent string
	analyzeDelay   time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a single analysis locally and print the verdict as JSON",
	Long: `Analyze runs the same analyzer the server uses, without starting it.
Inputs are validated with the API's rules.

Example:
  fakenewsdetect analyze text --title "Breaking" --content "Shocking claim"
  fakenewsdetect analyze url https://example.com/story
  fakenewsdetect analyze image ./photo.jpg`,
}

var analyzeTextCmd = &cobra.Command{
	Use:   "text",
	Short: "Analyze a title and body",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := validation.TextInput(map[string]any{
			"title":   analyzeTitle,
			"content": analyzeContent,
		})
		if err != nil {
			return err
		}
		return runAnalysis(cmd, func(ctx context.Context, a analysis.Analyzer) (verdict.Record, error) {
			return a.AnalyzeText(ctx, in)
		})
	},
}

var analyzeURLCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Analyze an article URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := validation.URLInput(map[string]any{"url": args[0]})
		if err != nil {
			return err
		}
		return runAnalysis(cmd, func(ctx context.Context, a analysis.Analyzer) (verdict.Record, error) {
			return a.AnalyzeURL(ctx, in)
		})
	},
}

var analyzeImageCmd = &cobra.Command{
	Use:   "image <file>",
	Short: "Analyze an image file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		mimeType := http.DetectContentType(data)
		if !validation.IsImageType(mimeType) {
			return errors.New(validation.ImageError)
		}
		in := analysis.ImageInput{Data: data, MimeType: mimeType}
		return runAnalysis(cmd, func(ctx context.Context, a analysis.Analyzer) (verdict.Record, error) {
			return a.AnalyzeImage(ctx, in)
		})
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.AddCommand(analyzeTextCmd, analyzeURLCmd, analyzeImageCmd)

	analyzeCmd.PersistentFlags().DurationVar(&analyzeDelay, "delay", 0, "simulated processing delay")

	analyzeTextCmd.Flags().StringVar(&analyzeTitle, "title", "", "article title")
	analyzeTextCmd.Flags().StringVar(&analyzeContent, "content", "", "article body")
}

func runAnalysis(cmd *cobra.Command, run func(context.Context, analysis.Analyzer) (verdict.Record, error)) error {
	a := analysis.NewMockAnalyzer(analysis.Delays{
		Text:  analyzeDelay,
		URL:   analyzeDelay,
		Image: analyzeDelay,
	})

	rec, err := run(cmd.Context(), a)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), rec)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
