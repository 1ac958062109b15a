package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/saisie-livres/internal/domain/models"
	"github.com/mamadbah2/saisie-livres/internal/service/stock"
)

// StockService describes the operations the HTTP layer can perform.
type StockService interface {
	StockOptions(ctx context.Context) (models.OptionSet, error)
	Submit(ctx context.Context, body []byte) (string, error)
	StoreReady() bool
}

// StockHandler serves the dropdown options and stock entry submissions.
type StockHandler struct {
	svc    StockService
	logger *zap.Logger
}

// NewStockHandler constructs the HTTP handler adapter.
func NewStockHandler(svc StockService, logger *zap.Logger) *StockHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockHandler{svc: svc, logger: logger}
}

// Options returns the rayon and état lists for the entry form.
func (h *StockHandler) Options(c *gin.Context) {
	set, err := h.svc.StockOptions(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading stock options", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.OptionSet{Rayons: []string{}, Etats: models.Etats()})
		return
	}

	c.JSON(http.StatusOK, set)
}

// AddEntry records one scanned book.
func (h *StockHandler) AddEntry(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.logger.Warn("failed reading request body", zap.Error(err))
		body = nil
	}

	msg, err := h.svc.Submit(c.Request.Context(), body)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"message": messageFor(err)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// Health reports liveness and whether the Airtable store is usable.
func (h *StockHandler) Health(c *gin.Context) {
	store := "ready"
	if !h.svc.StoreReady() {
		store = "uninitialized"
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "store": store})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, stock.ErrValidation), errors.Is(err, stock.ErrValueRejected):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	var stockErr *stock.Error
	if errors.As(err, &stockErr) && stockErr.Message != "" {
		return stockErr.Message
	}
	return "Erreur interne du serveur."
}
