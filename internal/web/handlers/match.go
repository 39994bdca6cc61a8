package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/mkotas/face-match/internal/config"
	"github.com/mkotas/face-match/internal/matcher"
	"github.com/mkotas/face-match/internal/recognizer"
	"github.com/mkotas/face-match/internal/store"
	"github.com/mkotas/face-match/internal/web/middleware"
)

// MatchHandler handles the upload-and-match endpoint.
type MatchHandler struct {
	config  *config.Config
	store   *store.FileStore
	encoder recognizer.Encoder
	matcher *matcher.Matcher
	logger  *slog.Logger
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(cfg *config.Config, st *store.FileStore, enc recognizer.Encoder, logger *slog.Logger) *MatchHandler {
	return &MatchHandler{
		config:  cfg,
		store:   st,
		encoder: enc,
		matcher: matcher.New(st, enc, cfg.Matching, logger),
		logger:  logger,
	}
}

// UploadAndMatch validates the multipart request, stages the uploaded image
// in the single area, encodes its faces, compares them against the selected
// bulk images and relocates the upload to the processed area. The pipeline
// is linear and synchronous: validate, stage, encode, compare, relocate,
// respond.
func (h *MatchHandler) UploadAndMatch(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("request_id", middleware.GetRequestID(r.Context()))
	logger.Info("received request at /upload_and_match endpoint")

	if err := r.ParseMultipartForm(h.config.Upload.MaxBytes()); err != nil {
		logger.Warn("failed to parse multipart form", "error", err)
		respondError(w, http.StatusBadRequest, "File and JSON data are required")
		return
	}

	file, header, err := r.FormFile("file")
	jsonValues := r.MultipartForm.Value["json_data"]
	if err != nil || len(jsonValues) == 0 {
		if err == nil {
			file.Close()
		}
		logger.Warn("file or JSON data missing in the request")
		respondError(w, http.StatusBadRequest, "File and JSON data are required")
		return
	}
	defer file.Close()
	jsonData := jsonValues[0]

	if header.Filename == "" {
		logger.Warn("no file selected")
		respondError(w, http.StatusBadRequest, "No selected file")
		return
	}

	if !h.config.Upload.AllowedExtension(header.Filename) {
		logger.Warn("invalid file type", "filename", sanitizeForLog(header.Filename))
		respondError(w, http.StatusBadRequest, "Invalid file type. Only .jpg, .jpeg, and .png are allowed.")
		return
	}

	candidates, err := matcher.ParseCandidates(jsonData)
	if err != nil {
		logger.Warn("invalid JSON data provided", "error", err)
		respondError(w, http.StatusBadRequest, "Invalid JSON data. Each entry must include 'name' and 'id' fields.")
		return
	}
	logger.Info("parsed JSON data successfully", "candidates", candidates.Len())

	filename := filepath.Base(header.Filename)
	savedPath, err := h.store.Save(store.AreaSingle, filename, file)
	if err != nil {
		logger.Error("failed to save uploaded file", "error", err)
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save uploaded file: %v", err))
		return
	}
	logger.Info("file saved", "path", savedPath)

	uploaded, err := h.encodeSaved(r, filename)
	if err != nil {
		logger.Error("failed to process the uploaded image", "error", err)
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to process the uploaded image: %v", err))
		return
	}

	if len(uploaded) == 0 {
		// Intentional early return: the upload stays in the single area.
		logger.Warn("no face detected in the uploaded image", "filename", sanitizeForLog(filename))
		respondError(w, http.StatusBadRequest, "No face detected in the uploaded image")
		return
	}

	results := h.matcher.Match(r.Context(), uploaded, candidates)

	// The upload moves to the processed area whether or not anything matched.
	if err := h.store.Move(store.AreaSingle, store.AreaProcessed, filename); err != nil {
		logger.Error("failed to move processed image", "error", err)
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to move processed image: %v", err))
		return
	}
	logger.Info("file moved to processed folder", "filename", sanitizeForLog(filename))

	if len(results) > 0 {
		logger.Info("matching completed successfully", "filename", sanitizeForLog(filename), "matches", len(results))
		respondJSON(w, http.StatusOK, map[string]any{
			"message":       "Success! Matches found.",
			"matches":       results,
			"uploaded_file": filename,
		})
		return
	}

	logger.Info("no matches found", "filename", sanitizeForLog(filename))
	respondJSON(w, http.StatusOK, map[string]any{
		"message":       "No match found",
		"uploaded_file": filename,
	})
}

// encodeSaved reads the staged upload back from the single area and runs
// face detection on it.
func (h *MatchHandler) encodeSaved(r *http.Request, filename string) ([]recognizer.Encoding, error) {
	data, err := h.store.Read(store.AreaSingle, filename)
	if err != nil {
		return nil, err
	}
	return h.encoder.DetectAndEncode(r.Context(), data)
}
