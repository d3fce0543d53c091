// README: /ask handler; quota check, coordinate parsing, then the assistant.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"skyguide/internal/http/middleware"
	"skyguide/internal/modules/usage"
	"skyguide/internal/service"
	"skyguide/internal/types"
)

const (
	askTimeout        = 60 * time.Second
	msgQuotaExhausted = "Bạn đã dùng hết lượt hỏi của tháng này. Vui lòng quay lại vào tháng sau."
)

type Answerer interface {
	Answer(ctx context.Context, req service.Request) string
}

// QuotaGuard is the per-client allowance check; usage.Service implements it.
type QuotaGuard interface {
	UseToken(ctx context.Context, uid string) error
	Remaining(ctx context.Context, uid string) (int, error)
}

type AskHandler struct {
	assistant Answerer
	quota     QuotaGuard
	timeout   time.Duration
	logger    *slog.Logger
}

// NewAskHandler builds the handler; quota may be nil to disable the allowance check.
func NewAskHandler(assistant Answerer, quota QuotaGuard, logger *slog.Logger) *AskHandler {
	return &AskHandler{
		assistant: assistant,
		quota:     quota,
		timeout:   askTimeout,
		logger:    logger.With("component", "ask-handler"),
	}
}

// Ask handles GET /ask?question=&latitude=&longitude=.
func (h *AskHandler) Ask(c *gin.Context) {
	question := strings.TrimSpace(c.Query("question"))

	if question != "" && h.quota != nil {
		if err := h.quota.UseToken(c.Request.Context(), middleware.CallerID(c)); err != nil {
			if errors.Is(err, usage.ErrInsufficientTokens) {
				writeMessage(c, http.StatusOK, msgQuotaExhausted)
				return
			}
			h.logger.Warn("quota check failed", "client", middleware.CallerID(c), "error", err)
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	msg := h.assistant.Answer(ctx, service.Request{
		Question: question,
		Origin:   parseOrigin(c.Query("latitude"), c.Query("longitude")),
	})
	writeMessage(c, http.StatusOK, msg)
}

// Quota handles GET /quota.
func (h *AskHandler) Quota(c *gin.Context) {
	if h.quota == nil {
		writeJSON(c, http.StatusNotFound, gin.H{"error": "quota disabled"})
		return
	}
	n, err := h.quota.Remaining(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		h.logger.Warn("quota lookup failed", "client", middleware.CallerID(c), "error", err)
		writeJSON(c, http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"remaining": n})
}

// parseOrigin returns a point only when both coordinates parse and are in range.
func parseOrigin(lat, lng string) *types.Point {
	if lat == "" || lng == "" {
		return nil
	}
	la, err1 := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	lo, err2 := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err1 != nil || err2 != nil || math.IsNaN(la) || math.IsNaN(lo) {
		return nil
	}
	p := types.Point{Lat: la, Lng: lo}
	if !p.Valid() {
		return nil
	}
	return &p
}
