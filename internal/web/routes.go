package web

import (
	"github.com/mkotas/face-match/internal/recognizer"
	"github.com/mkotas/face-match/internal/store"
	"github.com/mkotas/face-match/internal/web/handlers"
)

func (s *Server) setupRoutes(st *store.FileStore, enc recognizer.Encoder) {
	matchHandler := handlers.NewMatchHandler(s.config, st, enc, s.logger)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// Upload a photo and match it against the selected bulk images
	s.router.Post("/upload_and_match", matchHandler.UploadAndMatch)
}
