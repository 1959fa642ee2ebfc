package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/angeloszaimis/ticket-classifier/internal/classifier"
	"github.com/angeloszaimis/ticket-classifier/internal/metrics"
)

const (
	maxTicketLength = 10000
	maxBatchSize    = 100
)

// ClassifierHandler serves the classification API over the failover
// chain. Authentication, rate limiting and caching are the concern of
// whatever sits in front of this service.
type ClassifierHandler struct {
	logger           *slog.Logger
	classifier       *classifier.Classifier
	metricsCollector *metrics.Collector
	version          string
}

func NewClassifierHandler(logger *slog.Logger, cls *classifier.Classifier, collector *metrics.Collector, version string) *ClassifierHandler {
	return &ClassifierHandler{
		logger:           logger,
		classifier:       cls,
		metricsCollector: collector,
		version:          version,
	}
}

// Routes returns the API mux.
func (h *ClassifierHandler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/classify", h.classify)
	mux.HandleFunc("POST /api/v1/batch_classify", h.batchClassify)
	mux.HandleFunc("GET /api/v1/providers/health", h.providersHealth)
	mux.HandleFunc("GET /api/v1/providers/stats", h.providersStats)
	mux.HandleFunc("GET /api/v1/health", h.health)
	if h.metricsCollector != nil {
		mux.HandleFunc("GET /metrics", h.metricsCollector.Handler())
	}

	return mux
}

type classifyRequest struct {
	Ticket string `json:"ticket"`
}

func (r classifyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Ticket,
			validation.Required,
			validation.Length(1, maxTicketLength),
		),
	)
}

type batchClassifyRequest struct {
	Tickets []string `json:"tickets"`
}

func (r batchClassifyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Tickets,
			validation.Required,
			validation.Length(1, maxBatchSize),
			validation.Each(validation.Required, validation.Length(1, maxTicketLength)),
		),
	)
}

type classifyResponse struct {
	Category         string  `json:"category"`
	Confidence       float64 `json:"confidence"`
	Priority         string  `json:"priority"`
	Provider         string  `json:"provider"`
	ProcessingTimeMs float64 `json:"processing_time_ms"`
	RequestID        string  `json:"request_id"`
}

type errorResponse struct {
	Error     string               `json:"error"`
	Details   string               `json:"details,omitempty"`
	Attempts  []classifier.Attempt `json:"attempts,omitempty"`
	RequestID string               `json:"request_id"`
}

func (h *ClassifierHandler) classify(w http.ResponseWriter, r *http.Request) {
	requestID := newRequestID(w)
	start := time.Now()

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, requestID, "invalid JSON body", err.Error(), nil)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, requestID, "validation error", err.Error(), nil)
		return
	}

	h.emitEvent(metrics.MetricEvent{
		Type:      metrics.EventClassificationRequested,
		Timestamp: time.Now(),
	})

	h.logger.Info("Classification request",
		slog.String("request_id", requestID),
		slog.Int("ticket_length", len(req.Ticket)))

	result, err := h.classifier.Classify(r.Context(), req.Ticket)
	if err != nil {
		var exhausted *classifier.AllProvidersUnavailableError
		if errors.As(err, &exhausted) {
			h.emitEvent(metrics.MetricEvent{
				Type:      metrics.EventClassificationCompleted,
				Timestamp: time.Now(),
				Success:   false,
			})
			h.writeError(w, http.StatusServiceUnavailable, requestID,
				"all providers unavailable", "", exhausted.Attempts)
			return
		}

		h.logger.Error("Classification failed",
			slog.String("request_id", requestID),
			slog.Any("err", err))
		h.writeError(w, http.StatusInternalServerError, requestID, "classification failed", "", nil)
		return
	}

	h.emitEvent(metrics.MetricEvent{
		Type:      metrics.EventClassificationCompleted,
		Timestamp: time.Now(),
		Provider:  result.Provider,
		Category:  result.Category,
		Duration:  result.Latency,
		Success:   true,
	})

	h.writeJSON(w, http.StatusOK, classifyResponse{
		Category:         result.Category,
		Confidence:       result.Confidence,
		Priority:         result.Priority,
		Provider:         result.Provider,
		ProcessingTimeMs: float64(time.Since(start).Microseconds()) / 1000.0,
		RequestID:        requestID,
	})
}

type batchClassifyResponse struct {
	Total      int                    `json:"total"`
	Successful int                    `json:"successful"`
	Failed     int                    `json:"failed"`
	Results    []*classifier.Result   `json:"results"`
	Errors     []classifier.ItemError `json:"errors,omitempty"`
	RequestID  string                 `json:"request_id"`
}

func (h *ClassifierHandler) batchClassify(w http.ResponseWriter, r *http.Request) {
	requestID := newRequestID(w)

	var req batchClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, requestID, "invalid JSON body", err.Error(), nil)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeError(w, http.StatusBadRequest, requestID, "validation error", err.Error(), nil)
		return
	}

	h.logger.Info("Batch classification request",
		slog.String("request_id", requestID),
		slog.Int("tickets", len(req.Tickets)))

	batch, err := h.classifier.ClassifyBatch(r.Context(), req.Tickets)
	if err != nil {
		h.logger.Warn("Batch aborted",
			slog.String("request_id", requestID),
			slog.Any("err", err))
		h.writeError(w, http.StatusInternalServerError, requestID, "batch classification failed", "", nil)
		return
	}

	for _, result := range batch.Results {
		h.emitEvent(metrics.MetricEvent{
			Type:      metrics.EventClassificationCompleted,
			Timestamp: time.Now(),
			Provider:  result.Provider,
			Category:  result.Category,
			Duration:  result.Latency,
			Success:   true,
		})
	}

	h.writeJSON(w, http.StatusOK, batchClassifyResponse{
		Total:      len(req.Tickets),
		Successful: len(batch.Results),
		Failed:     len(batch.Errors),
		Results:    batch.Results,
		Errors:     batch.Errors,
		RequestID:  requestID,
	})
}

func (h *ClassifierHandler) providersHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"providers": h.classifier.Health(),
	})
}

func (h *ClassifierHandler) providersStats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.classifier.Stats())
}

func (h *ClassifierHandler) health(w http.ResponseWriter, r *http.Request) {
	report := h.classifier.Health()

	available := 0
	for _, ph := range report {
		if ph.Available {
			available++
		}
	}

	status := "ok"
	code := http.StatusOK
	if available == 0 {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	h.writeJSON(w, code, map[string]any{
		"status":    status,
		"version":   h.version,
		"providers": available,
		"total":     len(report),
	})
}

func (h *ClassifierHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", slog.Any("err", err))
	}
}

func (h *ClassifierHandler) writeError(w http.ResponseWriter, status int, requestID, message, details string, attempts []classifier.Attempt) {
	h.writeJSON(w, status, errorResponse{
		Error:     message,
		Details:   details,
		Attempts:  attempts,
		RequestID: requestID,
	})
}

func (h *ClassifierHandler) emitEvent(event metrics.MetricEvent) {
	if h.metricsCollector == nil {
		return
	}

	select {
	case h.metricsCollector.EventChannel() <- event:
	default:
	}
}

func newRequestID(w http.ResponseWriter) string {
	id := uuid.NewString()
	w.Header().Set("X-Request-ID", id)
	return id
}
