package export

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"unirise-backend/internal/majors"
	"unirise-backend/internal/shared/server/respond"
)

const missingResultMessage = "Missing 'result' in request body."

// Handler serves the export endpoints.
type Handler struct {
	Renderer *Renderer
}

// NewHandler constructs a Handler.
func NewHandler(r *Renderer) *Handler {
	return &Handler{Renderer: r}
}

// RegisterRoutes attaches the export routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/export/pdf", h.exportPDF)
	rg.POST("/share/card", h.shareCard)
}

type resultRequest struct {
	Result string `json:"result"`
}

func bindResult(c *gin.Context) (string, bool) {
	var req resultRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Result) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", missingResultMessage)
		return "", false
	}
	return req.Result, true
}

func (h *Handler) exportPDF(c *gin.Context) {
	text, ok := bindResult(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.Renderer.PDF(&buf, text); err != nil {
		respond.Error(c, http.StatusInternalServerError, "export_failed", "Internal Server Error: "+err.Error())
		return
	}
	respond.Attachment(c, "application/pdf", PDFFileName, buf.Bytes())
}

func (h *Handler) shareCard(c *gin.Context) {
	text, ok := bindResult(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := h.Renderer.Card(&buf, majors.ParseRecommendations(text)); err != nil {
		respond.Error(c, http.StatusInternalServerError, "export_failed", "Internal Server Error: "+err.Error())
		return
	}
	respond.Attachment(c, "image/png", "", buf.Bytes())
}
