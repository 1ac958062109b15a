package handlers

import (
	"bytes"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageHandler renders the entry page from an embedded filesystem.
type PageHandler struct {
	templates *template.Template
	logger    *zap.Logger
}

// NewPageHandler parses every HTML page found at the root of assets.
func NewPageHandler(assets fs.FS, logger *zap.Logger) (*PageHandler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := template.ParseFS(assets, "*.html")
	if err != nil {
		return nil, err
	}

	return &PageHandler{templates: tmpl, logger: logger}, nil
}

// Index serves the stock entry form.
func (h *PageHandler) Index(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "index.html", nil); err != nil {
		h.logger.Error("failed rendering index page", zap.Error(err))
		c.String(http.StatusInternalServerError, "page indisponible")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
