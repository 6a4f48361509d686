package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/prosodia/algorithms/pitch"
	"github.com/RyanBlaney/prosodia/algorithms/scoring"
	"github.com/RyanBlaney/prosodia/transcode"
)

var (
	analyzeSegments bool
	analyzePoints   bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [flags] <recording.wav>",
	Short: "Extract the pitch curve from a recording",
	Long: `Analyze a WAV recording and report its pitch curve statistics.

Examples:
  # Summarize a recording
  prosodia analyze recording.wav

  # Include speech segments and per-frame points as JSON
  prosodia analyze --segments --points -o json recording.wav`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeSegments, "segments", false,
		"include speech segments in the output")
	analyzeCmd.Flags().BoolVar(&analyzePoints, "points", false,
		"include every analyzed frame in the output")
}

type analyzeReport struct {
	Path     string            `json:"path" yaml:"path"`
	Stats    pitch.Stats       `json:"stats" yaml:"stats"`
	Segments []scoring.Segment `json:"segments,omitempty" yaml:"segments,omitempty"`
	Points   []pitch.DataPoint `json:"points,omitempty" yaml:"points,omitempty"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	series, err := analyzeFile(args[0], config.ToPitchConfig(), config.Extractor.AnalysisInterval)
	if err != nil {
		return err
	}

	report := analyzeReport{
		Path:  args[0],
		Stats: series.Stats(config.Extractor.ConfidenceThreshold),
	}

	if analyzeSegments {
		segmenter, err := scoring.NewSegmenter(config.ToScorerConfig().Segmenter)
		if err != nil {
			return err
		}
		report.Segments = segmenter.Segment(series)
	}
	if analyzePoints {
		report.Points = series.Points
	}

	return emit(report, func() {
		fmt.Printf("Recording: %s\n", report.Path)
		fmt.Printf("  Duration:        %.2f s\n", report.Stats.Duration)
		fmt.Printf("  Frames:          %d\n", report.Stats.PointCount)
		fmt.Printf("  Voiced fraction: %.1f%%\n", report.Stats.VoicedFraction*100)
		fmt.Printf("  Mean pitch:      %.1f Hz\n", report.Stats.MeanFrequency)
		fmt.Printf("  Pitch range:     %.1f - %.1f Hz\n", report.Stats.MinFrequency, report.Stats.MaxFrequency)
		for i, seg := range report.Segments {
			fmt.Printf("  Segment %d: %-6s %.2f s - %.2f s (pitch %.1f Hz)\n",
				i+1, seg.Kind, seg.Start, seg.End(), seg.AveragePitch)
		}
	})
}

// analyzeFile decodes a WAV file and runs the offline pitch analysis
func analyzeFile(path string, config pitch.Config, interval float64) (*pitch.Series, error) {
	samples, sampleRate, err := transcode.ReadWAV(path)
	if err != nil {
		return nil, err
	}

	if sampleRate != config.SampleRate {
		config.SampleRate = sampleRate
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("recording sample rate %d: %w", sampleRate, err)
		}
	}

	return pitch.AnalyzeRecording(samples, config, interval)
}

// emit renders a report in the configured output format, falling back
// to the given text renderer.
func emit(report any, text func()) error {
	switch outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(report)
	default:
		text()
		return nil
	}
}
