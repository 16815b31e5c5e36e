package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires handlers to a Gin engine. Routes under /api/v1 require
// apiKey in the x-api-key header when apiKey is set.
func NewRouter(log *zap.Logger, apiKey string, billHandler *BillHandler, documentHandler *DocumentHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	v1 := r.Group("/api/v1", WithAPIKey(apiKey))
	{
		b := v1.Group("/bills")
		b.POST("", billHandler.HandleScan)
		b.GET("", billHandler.HandleList)
		b.DELETE("", billHandler.HandleClear)
		b.DELETE("/:id", billHandler.HandleDelete)
		b.GET("/:id/thumbnail", billHandler.HandleThumbnail)

		d := v1.Group("/documents")
		d.POST("", documentHandler.HandleUpload)
		d.GET("/:id", documentHandler.HandleGet)
		d.POST("/:id/ask", documentHandler.HandleAsk)
	}

	return r
}
