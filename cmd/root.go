package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "face-match",
	Short: "A face matching service for uploaded photos",
	Long: `Face Match runs an HTTP service that accepts an uploaded photo together
with a list of candidate photos from the bulk area and reports which
candidates contain a matching face. Face detection and embeddings are
delegated to an external encoder service.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
