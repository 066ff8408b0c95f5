package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"validarfc/internal/validation"
	dErrors "validarfc/pkg/domain-errors"
	"validarfc/pkg/platform/httputil"
	"validarfc/pkg/requestcontext"
)

const (
	bulkFileField = "file"

	defaultMaxBodyBytes = 64 << 10
	defaultMaxRows      = 5000
	defaultMaxBytes     = 1 << 20
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the validation operations the handler depends on.
type Service interface {
	Validate(ctx context.Context, raw string) validation.Result
	ValidateBatch(ctx context.Context, raws []string) (*validation.BatchResult, error)
}

// Handler wires validation endpoints to the validation service.
type Handler struct {
	service      Service
	logger       *slog.Logger
	maxBodyBytes int64
	maxRows      int
	maxBytes     int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithMaxBodyBytes bounds the JSON body accepted by POST /api/validate.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}

// WithBulkLimits bounds bulk uploads by candidate count and body size.
func WithBulkLimits(maxRows int, maxBytes int64) Option {
	return func(h *Handler) {
		if maxRows > 0 {
			h.maxRows = maxRows
		}
		if maxBytes > 0 {
			h.maxBytes = maxBytes
		}
	}
}

// New constructs a validation handler with its dependencies.
func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service:      service,
		logger:       logger,
		maxBodyBytes: defaultMaxBodyBytes,
		maxRows:      defaultMaxRows,
		maxBytes:     defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts validation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/validate", h.HandleValidate)
	r.Post("/api/validate/bulk", h.HandleBulk)
}

// HandleValidate handles POST /api/validate requests. A malformed body is a
// 400 and an oversized one a 413; a well-formed body always yields 200 with
// is_valid set.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result := h.service.Validate(ctx, *req.RFC)

	h.logger.DebugContext(ctx, "rfc validated",
		"request_id", requestID,
		"is_valid", result.Valid,
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleBulk handles POST /api/validate/bulk. The upload is either a
// multipart form with a "file" part or a raw text/csv body.
func (h *Handler) HandleBulk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	candidates, err := h.readCandidates(r)
	if err != nil {
		h.logger.WarnContext(ctx, "rejected bulk upload",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	batch, err := h.service.ValidateBatch(ctx, candidates)
	if err != nil {
		h.logger.ErrorContext(ctx, "bulk validation failed",
			"request_id", requestID,
			"count", len(candidates),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "bulk validation completed",
		"request_id", requestID,
		"count", len(candidates),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromBatch(batch))
}

func (h *Handler) readCandidates(r *http.Request) ([]string, error) {
	contentType := r.Header.Get("Content-Type")
	mediaType := ""
	if contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid Content-Type header")
		}
		mediaType = mt
	}

	switch mediaType {
	case "multipart/form-data":
		return h.readMultipart(r)
	case "", "text/csv", "text/plain", "application/csv", "application/octet-stream":
		return validation.ParseCandidates(r.Body, h.maxRows)
	default:
		return nil, dErrors.New(dErrors.CodeUnsupported, "upload must be multipart/form-data or text/csv")
	}
}

func (h *Handler) readMultipart(r *http.Request) ([]string, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid multipart body")
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "no file provided")
		}
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, dErrors.Wrap(err, dErrors.CodeTooLarge, "upload too large")
			}
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid multipart body")
		}
		if part.FormName() != bulkFileField {
			_ = part.Close()
			continue
		}
		defer part.Close()
		return validation.ParseCandidates(part, h.maxRows)
	}
}
