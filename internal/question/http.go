package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/quiz-uploader/pkg/http/errors"
)

const (
	defaultMaxUploadBytes = 10 << 20
	multipartMemory       = 8 << 20
)

// HTTPHandlers exposes the upload and quiz endpoints.
type HTTPHandlers struct {
	svc       *Service
	maxUpload int64
	logger    zerolog.Logger
}

// NewHTTPHandlers creates handlers; maxUpload <= 0 uses 10 MiB.
func NewHTTPHandlers(svc *Service, maxUpload int64, logger zerolog.Logger) *HTTPHandlers {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &HTTPHandlers{
		svc:       svc,
		maxUpload: maxUpload,
		logger:    logger.With().Str("component", "question_http").Logger(),
	}
}

// UploadResponse is returned by a successful upload.
type UploadResponse struct {
	Message       string `json:"message"`
	QuestionCount int    `json:"question_count"`
}

// Upload handles POST /upload with a multipart "file" field.
func (h *HTTPHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w, http.MethodPost)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			httperrors.RespondError(w, http.StatusRequestEntityTooLarge, httperrors.ErrCodeTooLarge,
				fmt.Sprintf("File exceeds the %d byte limit", h.maxUpload))
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingField, "No file part in the request")
		default:
			httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid multipart payload")
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A file input submitted with nothing selected arrives as a plain
		// value with an empty filename.
		if _, ok := r.MultipartForm.Value["file"]; ok {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingField, "No selected file")
			return
		}
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingField, "No file part in the request")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingField, "No selected file")
		return
	}

	res, err := h.svc.Ingest(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, ErrInputMissing) {
			httperrors.RespondBadRequest(w, httperrors.ErrCodeMissingField, "No selected file")
			return
		}
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("upload processing failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeProcessingFailed,
			"Failed to process file: "+err.Error())
		return
	}

	h.logger.Info().
		Str("filename", res.Filename).
		Str("stored_path", res.StoredPath).
		Int("question_count", res.QuestionCount).
		Msg("questions uploaded")

	writeJSON(w, http.StatusOK, UploadResponse{
		Message:       fmt.Sprintf("File %s uploaded and questions saved successfully!", header.Filename),
		QuestionCount: res.QuestionCount,
	})
}

// Quiz handles GET /api/quiz.
func (h *HTTPHandlers) Quiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	items, err := h.svc.Quiz(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("quiz fetch failed")
		httperrors.RespondInternalError(w, "Failed to load quiz questions")
		return
	}
	if items == nil {
		items = []Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Questions handles GET /api/questions.
func (h *HTTPHandlers) Questions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	records, err := h.svc.Questions(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("question list failed")
		httperrors.RespondInternalError(w, "Failed to load questions")
		return
	}
	if records == nil {
		records = []Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// Question handles GET /api/questions/{id}.
func (h *HTTPHandlers) Question(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w, http.MethodGet)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidID, "Question id must be a positive integer")
		return
	}

	rec, err := h.svc.Question(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, fmt.Sprintf("Question %d not found", id))
			return
		}
		h.logger.Error().Err(err).Int64("id", id).Msg("question fetch failed")
		httperrors.RespondInternalError(w, "Failed to load question")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
