package majors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"unirise-backend/internal/llm"
	"unirise-backend/internal/shared/server/respond"
)

const invalidAnswersMessage = "Missing or invalid 'answers' in request body."

// Handler exposes the options and prediction endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/options", h.getOptions)
	rg.POST("/predict-major", h.predict)
}

func (h *Handler) getOptions(c *gin.Context) {
	if h.Svc == nil || h.Svc.Catalog == nil {
		respond.Error(c, http.StatusInternalServerError, "options_unavailable", "Failed to fetch options")
		return
	}
	respond.OK(c, h.Svc.Catalog.Options())
}

type predictRequest struct {
	Answers json.RawMessage `json:"answers"`
}

func (h *Handler) predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_answers", invalidAnswersMessage)
		return
	}
	answers, err := DecodeAnswers(req.Answers)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_answers", invalidAnswersMessage)
		return
	}

	pred, err := h.Svc.Predict(c.Request.Context(), answers)
	if err != nil {
		writePredictError(c, err)
		return
	}
	respond.OK(c, pred)
}

func writePredictError(c *gin.Context, err error) {
	var validation *ValidationError
	var upstream *llm.UpstreamError
	switch {
	case errors.As(err, &validation):
		respond.Error(c, http.StatusBadRequest, "validation_error", validation.Error())
	case errors.As(err, &upstream):
		msg := upstream.Message
		if msg == "" {
			msg = "Unknown error"
		}
		status := upstream.StatusCode
		if status < http.StatusBadRequest {
			status = http.StatusBadGateway
		}
		respond.Error(c, status, "upstream_error", "API Error: "+msg)
	case errors.Is(err, context.Canceled):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled")
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Internal Server Error: "+err.Error())
	}
}
