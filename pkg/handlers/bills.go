package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"billscan/pkg/services/bills"
	"billscan/pkg/services/ocr"
	"billscan/pkg/store"

	"github.com/gin-gonic/gin"
)

// BillService defines the behavior consumed by BillHandler.
type BillService interface {
	Scan(ctx context.Context, uploads []bills.Upload) ([]bills.Result, error)
	Summary(ctx context.Context) (bills.Summary, error)
	Thumbnail(ctx context.Context, id uint, maxSide int) ([]byte, error)
	Delete(ctx context.Context, id uint) error
	ClearAll(ctx context.Context) (int64, error)
}

// BillHandler manages bill scanning HTTP interactions.
type BillHandler struct {
	service  BillService
	maxBytes int64
}

// NewBillHandler builds the handler. Request bodies larger than maxBytes are
// refused with 413.
func NewBillHandler(svc BillService, maxBytes int64) *BillHandler {
	return &BillHandler{service: svc, maxBytes: maxBytes}
}

// HandleScan accepts one or more images in the "images" field.
func (h *BillHandler) HandleScan(c *gin.Context) {
	if !parseMultipart(c, h.maxBytes) {
		return
	}

	files := c.Request.MultipartForm.File["images"]
	if len(files) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "missing images",
		})
		return
	}

	uploads := make([]bills.Upload, 0, len(files))
	for _, fh := range files {
		data, err := readFormFile(fh)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("unreadable file %s", fh.Filename),
			})
			return
		}
		uploads = append(uploads, bills.Upload{
			Filename: fh.Filename,
			Data:     data,
			Name:     c.Request.FormValue("name"),
			Date:     c.Request.FormValue("date"),
			Comment:  c.Request.FormValue("comment"),
		})
	}

	results, err := h.service.Scan(c.Request.Context(), uploads)
	if errors.Is(err, context.Canceled) {
		c.AbortWithStatusJSON(statusClientClosedRequest, gin.H{
			"error":   "request canceled",
			"results": results,
		})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to store bill",
			"results": results,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// HandleList returns every stored bill with the grand total.
func (h *BillHandler) HandleList(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// HandleClear deletes every bill.
func (h *BillHandler) HandleClear(c *gin.Context) {
	n, err := h.service.ClearAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// HandleDelete deletes a single bill.
func (h *BillHandler) HandleDelete(c *gin.Context) {
	id, ok := billID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		abortStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HandleThumbnail serves a PNG preview of the stored image.
func (h *BillHandler) HandleThumbnail(c *gin.Context) {
	id, ok := billID(c)
	if !ok {
		return
	}
	size := 1000
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
			return
		}
		size = n
	}
	data, err := h.service.Thumbnail(c.Request.Context(), id, size)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func billID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func abortStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	case errors.Is(err, ocr.ErrUnsupportedImage):
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "stored image cannot be decoded"})
		return
	case errors.Is(err, context.Canceled):
		c.AbortWithStatusJSON(statusClientClosedRequest, gin.H{"error": "request canceled"})
		return
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
}

// statusClientClosedRequest is nginx's non-standard code for a request the
// client gave up on.
const statusClientClosedRequest = 499

// parseMultipart caps the body at maxBytes and parses it. It writes the error
// response itself and reports whether the handler should continue.
func parseMultipart(c *gin.Context, maxBytes int64) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	err := c.Request.ParseMultipartForm(maxBytes)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("payload exceeds %d bytes", tooLarge.Limit),
		})
		return false
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error": "invalid multipart payload",
	})
	return false
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
