package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/prosodia/algorithms/scoring"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare [flags] <reference.wav> <user.wav>",
	Short: "Score a recording against a reference",
	Long: `Compare a learner's recording against a reference and report how
closely the intonation and rhythm match.

Both files are analyzed with the same settings, normalized to remove
speaker-specific absolute pitch, and scored on curve shape and timing.

Examples:
  # Score a practice attempt
  prosodia compare reference.wav attempt.wav

  # Machine-readable result
  prosodia compare -o json reference.wav attempt.wav`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

type compareReport struct {
	Reference string               `json:"reference" yaml:"reference"`
	User      string               `json:"user" yaml:"user"`
	Result    scoring.SessionScore `json:"result" yaml:"result"`
}

func runCompare(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	pitchConfig := config.ToPitchConfig()
	interval := config.Extractor.AnalysisInterval

	reference, err := analyzeFile(args[0], pitchConfig, interval)
	if err != nil {
		return fmt.Errorf("reference: %w", err)
	}
	user, err := analyzeFile(args[1], pitchConfig, interval)
	if err != nil {
		return fmt.Errorf("user: %w", err)
	}

	scorer, err := scoring.NewScorer(config.ToScorerConfig())
	if err != nil {
		return err
	}

	report := compareReport{
		Reference: args[0],
		User:      args[1],
		Result:    scorer.Score(reference, user),
	}

	return emit(report, func() {
		r := report.Result
		if r.InsufficientData {
			fmt.Println("Not enough voiced speech to score. Try a longer or clearer recording.")
			return
		}
		fmt.Printf("Total score: %.1f / 100\n", r.Total)
		fmt.Printf("  Pitch curve:  %.1f\n", r.Pitch.Score)
		fmt.Printf("    alignment:  %.2f\n", r.Pitch.Alignment)
		fmt.Printf("    closeness:  %.2f\n", r.Pitch.PitchCloseness)
		fmt.Printf("    contour:    %.2f\n", r.Pitch.Contour)
		fmt.Printf("    range:      %.2f\n", r.Pitch.Range)
		fmt.Printf("  Rhythm:       %.2f\n", r.Rhythm)
	})
}
