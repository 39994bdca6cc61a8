package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mkotas/face-match/internal/config"
	"github.com/mkotas/face-match/internal/matcher"
	"github.com/mkotas/face-match/internal/recognizer"
	"github.com/mkotas/face-match/internal/store"
)

var matchCmd = &cobra.Command{
	Use:   "match <image>",
	Short: "Match faces in a local image against the bulk area",
	Long: `Compare the faces found in a local image against photos stored in the
bulk area, without going through the HTTP API.

By default every image in the bulk area is checked. Pass --candidates to
restrict the comparison to specific files.

Examples:
  # Match photo.jpg against every bulk image
  face-match match photo.jpg

  # Restrict the comparison to two candidates
  face-match match photo.jpg --candidates a.jpg,b.jpg

  # Stricter distance threshold and JSON output
  face-match match photo.jpg --threshold 0.3 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().Float64("tolerance", 0, "Match tolerance (0 = configured default)")
	matchCmd.Flags().Float64("threshold", 0, "Maximum face distance (0 = configured default)")
	matchCmd.Flags().StringSlice("candidates", nil, "Bulk file names to compare against (default: all)")
	matchCmd.Flags().Bool("json", false, "Output as JSON")
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if tolerance := mustGetFloat64(cmd, "tolerance"); tolerance > 0 {
		cfg.Matching.Tolerance = tolerance
	}
	if threshold := mustGetFloat64(cmd, "threshold"); threshold > 0 {
		cfg.Matching.DistanceThreshold = threshold
	}
	asJSON := mustGetBool(cmd, "json")

	st, err := store.New(cfg.Storage.BaseDir)
	if err != nil {
		return fmt.Errorf("failed to prepare storage areas: %w", err)
	}

	names := mustGetStringSlice(cmd, "candidates")
	if len(names) == 0 {
		names, err = st.List(store.AreaBulk)
		if err != nil {
			return fmt.Errorf("failed to list bulk area: %w", err)
		}
	}
	if len(names) == 0 {
		return errors.New("bulk area is empty, nothing to match against")
	}

	imageData, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	encoder := recognizer.NewClient(cfg.Encoder.URL, cfg.Encoder.MaxImageSize)
	ctx := context.Background()

	uploaded, err := encoder.DetectAndEncode(ctx, imageData)
	if err != nil {
		return fmt.Errorf("failed to process image: %w", err)
	}
	if len(uploaded) == 0 {
		return errors.New("no face detected in the image")
	}
	fmt.Printf("Detected %d face(s) in %s\n", len(uploaded), args[0])

	// Quiet logger: the CLI reports through the progress bar and summary.
	m := matcher.New(st, encoder, cfg.Matching, slog.New(slog.NewTextHandler(io.Discard, nil)))

	bar := progressbar.Default(int64(len(names)), "matching")
	var results []matcher.Result
	for _, name := range names {
		results = append(results, m.Match(ctx, uploaded, matcher.CandidatesFromNames([]string{name}))...)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No match found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tUPLOADED FACE\tBULK FACE\tDISTANCE\tCONFIDENCE")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.4f\t%s\n",
			r.MatchedFile, r.UploadedFaceIndex, r.MatchedFaceIndexInBulk, r.FaceDistance, r.Confidence)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\n%d match(es) across %d candidate(s)\n", len(results), len(names))
	return nil
}
