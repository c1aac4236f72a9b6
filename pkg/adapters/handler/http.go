package handler

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/wadjakorntonsri/qr-shortener/pkg/adapters/qr"
	"github.com/wadjakorntonsri/qr-shortener/pkg/core/domain"
	"github.com/wadjakorntonsri/qr-shortener/pkg/metrics"
	"github.com/wadjakorntonsri/qr-shortener/pkg/ports"
)

//go:embed static/index.html
var indexPage []byte

const maxBodyBytes = 1 << 20

type HTTPHandler struct {
	service  ports.LinkService
	renderer ports.QRRenderer
	baseURL  string
	logger   *slog.Logger
}

func NewHTTPHandler(service ports.LinkService, renderer ports.QRRenderer, baseURL string, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{
		service:  service,
		renderer: renderer,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// ShortenRequest payload. URL is a pointer so a missing field can be told
// apart from an empty string.
type ShortenRequest struct {
	URL *string `json:"url"`
}

type ShortenResponse struct {
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	ShortID     string    `json:"short_id"`
	CreatedAt   time.Time `json:"created_at"`
	QRCode      string    `json:"qr_code,omitempty"`
}

type QRResponse struct {
	QRCode string `json:"qr_code"`
}

// Index serves the landing page
func (h *HTTPHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexPage)
}

// Shorten creates a short link
func (h *HTTPHandler) Shorten(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	var req ShortenRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.URL == nil {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	link, err := h.service.Shorten(r.Context(), *req.URL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidURL) {
			writeError(w, http.StatusBadRequest, "Invalid URL format")
			return
		}
		logger.Error("shorten failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Database error occurred")
		return
	}
	metrics.LinksCreated.Inc()

	shortURL := h.shortURL(r, link.ShortID)
	resp := ShortenResponse{
		ShortURL:    shortURL,
		OriginalURL: link.OriginalURL,
		ShortID:     link.ShortID,
		CreatedAt:   link.CreatedAt,
	}

	// A failed render only drops the image from the response.
	if png, err := h.renderer.Render(shortURL); err != nil {
		metrics.QRFailures.Inc()
		logger.Warn("qr render failed", slog.String("short_id", link.ShortID), slog.Any("error", err))
	} else {
		resp.QRCode = qr.DataURI(png)
	}

	writeJSON(w, http.StatusOK, resp)
}

// QRCode renders the QR image for an existing short link
func (h *HTTPHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)
	shortID := r.PathValue("short_id")

	exists, err := h.service.Exists(r.Context(), shortID)
	if err != nil {
		logger.Error("qr lookup failed", slog.String("short_id", shortID), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, "Short URL not found")
		return
	}

	png, err := h.renderer.Render(h.shortURL(r, shortID))
	if err != nil {
		metrics.QRFailures.Inc()
		logger.Error("qr render failed", slog.String("short_id", shortID), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	writeJSON(w, http.StatusOK, QRResponse{QRCode: qr.DataURI(png)})
}

// Redirect to original URL, recording the click
func (h *HTTPHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	shortID := r.PathValue("short_id")

	originalURL, err := h.service.Resolve(r.Context(), shortID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.Redirects.WithLabelValues("not_found").Inc()
			http.Error(w, "Short URL not found", http.StatusNotFound)
			return
		}
		metrics.Redirects.WithLabelValues("error").Inc()
		h.requestLogger(r).Error("redirect failed", slog.String("short_id", shortID), slog.Any("error", err))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	metrics.Redirects.WithLabelValues("found").Inc()
	http.Redirect(w, r, originalURL, http.StatusFound)
}

func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *HTTPHandler) Favicon(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}

// shortURL joins the public base with the id. Without a configured base it
// follows the host the client used.
func (h *HTTPHandler) shortURL(r *http.Request, shortID string) string {
	if h.baseURL != "" {
		return h.baseURL + "/" + shortID
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host + "/" + shortID
}

func (h *HTTPHandler) requestLogger(r *http.Request) *slog.Logger {
	return h.logger.With(slog.String("request_id", RequestIDFrom(r.Context())))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("encode response", slog.Any("error", err))
	}
}

// writeError writes { "error": "msg" }
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
