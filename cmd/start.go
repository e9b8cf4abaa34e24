/*
Copyright © 2025 huduassist
*/
package cmd

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huduassist/huduassist-be/config"
	"github.com/huduassist/huduassist-be/handler"
	"github.com/huduassist/huduassist-be/service"
	"github.com/huduassist/huduassist-be/store"
	"github.com/huduassist/huduassist-be/types"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HuduAssist KE API server",
	Long:  `Starts the HTTP server handling document uploads and question answering`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		defer logger.Sync()

		router := gin.Default()
		corsHandler := handler.NewCorsHandler()
		router.Use(corsHandler.CorsMiddleware)

		ragService, initErr := buildRAGService(cfg, logger)
		if initErr != nil {
			// Keep the process up so the health endpoint can report why the
			// service is degraded.
			logger.Error("core modules failed to initialize", zap.Error(initErr))
		}

		healthHandler := handler.NewHealthHandler(cfg.APIKeyConfigured(), initErr == nil)
		router.GET("/", healthHandler.HandleRoot)
		router.GET("/health", healthHandler.HandleHealth)

		if initErr == nil {
			fileService := service.NewFileService(cfg.UploadDir, cfg.RequestTimeout, logger)
			uploadHandler := handler.NewUploadHandler(fileService, ragService, cfg.MaxUploadSize)
			queryHandler := handler.NewQueryHandler(ragService)
			sessionHandler := handler.NewSessionHandler(ragService)

			apiV1 := router.Group("/api/v1")
			{
				apiV1.POST("/upload", uploadHandler.UploadDocumentHandler)
				apiV1.POST("/upload-url", uploadHandler.UploadFromURLHandler)
				apiV1.POST("/query", queryHandler.HandleQuery)
				apiV1.DELETE("/session/:id", sessionHandler.HandleDelete)
				apiV1.GET("/sessions", sessionHandler.HandleList)
			}
		}

		logger.Info("starting server", zap.String("port", cfg.Port), zap.String("provider", cfg.Provider))
		if err := router.Run(":" + cfg.Port); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	},
}

func buildRAGService(cfg *config.Config, logger *zap.Logger) (*service.RAGService, error) {
	pdfService := service.NewPDFService(types.DocumentServiceConfig{
		MaxChunkSize: cfg.MaxChunkSize,
		OverlapSize:  cfg.OverlapSize,
	}, logger)

	var ai service.AIService
	var embedder service.Embedder
	switch cfg.Provider {
	case config.ProviderOpenAI:
		svc := service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.ChatModel, cfg.EmbeddingModel, logger)
		ai, embedder = svc, svc
	default:
		svc, err := service.NewGeminiService(cfg.GoogleAPIKeys(), cfg.ChatModel, cfg.EmbeddingModel, logger)
		if err != nil {
			return nil, err
		}
		ai, embedder = svc, svc
	}

	sessions := store.NewSessionStore(cfg.SessionTTL, logger)
	return service.NewRAGService(pdfService, embedder, ai, sessions, cfg.TopK, cfg.RequestTimeout, logger), nil
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
