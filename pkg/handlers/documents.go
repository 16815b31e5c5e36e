package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"billscan/pkg/models"
	"billscan/pkg/services/completion"
	"billscan/pkg/services/documents"
	"billscan/pkg/services/pdftext"
	"billscan/pkg/store"

	"github.com/gin-gonic/gin"
)

// DocumentService defines the behavior consumed by DocumentHandler.
type DocumentService interface {
	Upload(ctx context.Context, filename string, data []byte) (*models.Document, error)
	Get(ctx context.Context, id string) (*models.Document, error)
	Ask(ctx context.Context, id, prompt string) (*documents.Answer, error)
}

// DocumentHandler manages PDF upload and question HTTP interactions.
type DocumentHandler struct {
	service  DocumentService
	maxBytes int64
}

// NewDocumentHandler builds the handler. Request bodies larger than maxBytes are
// refused with 413.
func NewDocumentHandler(svc DocumentService, maxBytes int64) *DocumentHandler {
	return &DocumentHandler{service: svc, maxBytes: maxBytes}
}

type documentResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Pages    int    `json:"pages"`
	Text     string `json:"text"`
}

type askRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// HandleUpload accepts a PDF in the "file" field and returns its extracted text.
func (h *DocumentHandler) HandleUpload(c *gin.Context) {
	if !parseMultipart(c, h.maxBytes) {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "missing file",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}

	doc, err := h.service.Upload(c.Request.Context(), header.Filename, data)
	switch {
	case errors.Is(err, documents.ErrNotPDF):
		c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		return
	case errors.Is(err, pdftext.ErrNoText):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "could not read pdf"})
		return
	}

	c.JSON(http.StatusCreated, toDocumentResponse(doc))
}

// HandleGet returns a previously uploaded document.
func (h *DocumentHandler) HandleGet(c *gin.Context) {
	doc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDocumentResponse(doc))
}

// HandleAsk answers a question about an uploaded document.
func (h *DocumentHandler) HandleAsk(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	ans, err := h.service.Ask(c.Request.Context(), c.Param("id"), req.Prompt)
	switch {
	case errors.Is(err, completion.ErrEmptyPrompt):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	case err != nil:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "completion error"})
		return
	}
	c.JSON(http.StatusOK, ans)
}

func toDocumentResponse(doc *models.Document) documentResponse {
	return documentResponse{ID: doc.ID, Filename: doc.Filename, Pages: doc.Pages, Text: doc.Text}
}
