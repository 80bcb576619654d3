package server

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/tohu/internal/logger"
	"github.com/abhisek/tohu/internal/pack"
	"github.com/abhisek/tohu/internal/pdf"
)

// HealthHandler answers liveness probes.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// PackGenerator builds packs. *pack.Service implements it.
type PackGenerator interface {
	Generate(ctx context.Context, in pack.Input) (*pack.Pack, error)
}

// HandoutRenderer draws the PDF handout. *pdf.Renderer implements it.
type HandoutRenderer interface {
	Render(h pdf.Handout) (*pdf.Result, error)
}

// PackHandler serves POST /api/generate_pack.
type PackHandler struct {
	packs PackGenerator
	pdf   HandoutRenderer
	log   *logger.Logger
}

func NewPackHandler(packs PackGenerator, doc HandoutRenderer, log *logger.Logger) *PackHandler {
	return &PackHandler{packs: packs, pdf: doc, log: logger.OrNop(log).With("component", "pack_handler")}
}

// GeneratePackRequest is the request body. Activity may be null.
type GeneratePackRequest struct {
	Theme    string  `json:"theme" binding:"required"`
	Level    string  `json:"level"`
	Keywords string  `json:"keywords"`
	Subject  string  `json:"subject"`
	Activity *string `json:"activity"`
}

func (r GeneratePackRequest) input() pack.Input {
	in := pack.Input{Theme: r.Theme, Level: r.Level, Keywords: r.Keywords, Subject: r.Subject}
	if r.Activity != nil {
		in.Activity = *r.Activity
	}
	return in.Normalize()
}

// GeneratePackResponse is a pack plus its PDF handout.
type GeneratePackResponse struct {
	*pack.Pack
	PDFBase64  string   `json:"pdf_base64"`
	PDFSkipped []string `json:"pdf_skipped_images,omitempty"`
}

func (h *PackHandler) GeneratePack(c *gin.Context) {
	var req GeneratePackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, CodeInvalidRequest, "Invalid request: "+err.Error())
		return
	}
	in := req.input()
	if err := in.Validate(); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, CodeInvalidRequest, err.Error())
		return
	}

	p, err := h.packs.Generate(c.Request.Context(), in)
	if err != nil {
		h.log.Error("pack generation failed", "theme", in.Theme, "request_id", c.GetString(requestIDKey), "error", err.Error())
		RespondError(c, http.StatusInternalServerError, CodeGenerationFailed, pack.Detail(err))
		return
	}

	doc, err := h.pdf.Render(pdf.FromPack(p))
	if err != nil {
		h.log.Error("handout rendering failed", "pack_id", p.PackID, "error", err.Error())
		RespondError(c, http.StatusInternalServerError, CodePDFFailed, "Generation failed: "+err.Error())
		return
	}

	RespondOK(c, GeneratePackResponse{
		Pack:       p,
		PDFBase64:  base64.StdEncoding.EncodeToString(doc.Bytes),
		PDFSkipped: doc.Skipped,
	})
}
