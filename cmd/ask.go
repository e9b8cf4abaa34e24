/*
Copyright © 2025 huduassist
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huduassist/huduassist-be/config"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ingest a local PDF and ask a question against it",
	Long: `Runs the full pipeline once without the HTTP server: extract and chunk
the PDF, embed the chunks, and answer the question from the retrieved context.
Without --file the question is answered in general mode.`,
	Run: func(cmd *cobra.Command, args []string) {
		filePath, _ := cmd.Flags().GetString("file")
		question, _ := cmd.Flags().GetString("question")
		showContext, _ := cmd.Flags().GetBool("show-context")

		if question == "" {
			log.Fatal("a --question is required")
		}

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logger, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer logger.Sync()

		ragService, err := buildRAGService(cfg, logger)
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}

		ctx := context.Background()
		sessionID := ""
		if filePath != "" {
			sessionID, err = ragService.Ingest(ctx, filePath, filePath, "")
			if err != nil {
				log.Fatalf("Failed to ingest document: %v", err)
			}
			fmt.Println("Session:", sessionID)
		}

		if showContext && sessionID != "" {
			retrieved, err := ragService.Retrieve(ctx, sessionID, question)
			if err != nil {
				log.Fatalf("Failed to retrieve context: %v", err)
			}
			for i, chunk := range retrieved {
				fmt.Printf("--- chunk %d (score %.4f) ---\n%s\n", i+1, chunk.Score, chunk.Content)
			}
		}

		resp, err := ragService.Answer(ctx, question, sessionID)
		if err != nil {
			log.Fatalf("Failed to answer: %v", err)
		}
		fmt.Println(resp.Response)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringP("file", "f", "", "Path to a PDF to ingest before asking")
	askCmd.Flags().StringP("question", "q", "", "Question to ask")
	askCmd.Flags().Bool("show-context", false, "Print the retrieved chunks before the answer")
}
