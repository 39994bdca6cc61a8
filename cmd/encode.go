package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkotas/face-match/internal/config"
	"github.com/mkotas/face-match/internal/recognizer"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <image>",
	Short: "Detect faces in an image and print an encoding summary",
	Long: `Send an image to the encoder service and print the number of detected
faces and the dimensionality of their encodings. Useful for checking that
the encoder sidecar is reachable and that an image is usable.

Examples:
  # Summarize detected faces
  face-match encode photo.jpg

  # Dump the raw encodings as JSON
  face-match encode photo.jpg --json`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().Bool("json", false, "Output raw encodings as JSON")
}

func runEncode(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	imageData, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	encoder := recognizer.NewClient(cfg.Encoder.URL, cfg.Encoder.MaxImageSize)
	encodings, err := encoder.DetectAndEncode(context.Background(), imageData)
	if err != nil {
		return fmt.Errorf("failed to process image: %w", err)
	}

	if mustGetBool(cmd, "json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(encodings)
	}

	if len(encodings) == 0 {
		fmt.Println("No face detected")
		return nil
	}

	fmt.Printf("Detected %d face(s)\n", len(encodings))
	for i, e := range encodings {
		fmt.Printf("  face %d: %d dimensions\n", i, len(e))
	}
	return nil
}
