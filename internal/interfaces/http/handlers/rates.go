// internal/interfaces/http/handlers/rates.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/pricing"
)

// RatesHandler handles exchange rate registry endpoints
type RatesHandler struct {
	pricingService *pricing.Service
}

// NewRatesHandler creates a new rates handler
func NewRatesHandler(pricingService *pricing.Service) *RatesHandler {
	return &RatesHandler{
		pricingService: pricingService,
	}
}

// ListRates handles GET /rates
func (h *RatesHandler) ListRates(c *gin.Context) {
	rates, err := h.pricingService.ListRates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list exchange rates",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Exchange rates retrieved successfully",
		"data":    rates,
	})
}

// CreateRate handles POST /rates
func (h *RatesHandler) CreateRate(c *gin.Context) {
	var req pricing.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	rate, err := h.pricingService.CreateRate(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Exchange rate created successfully",
		"data":    rate,
	})
}

// UpdateRate handles PUT /rates/:id
func (h *RatesHandler) UpdateRate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid rate ID",
		})
		return
	}

	var req pricing.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	rate, err := h.pricingService.UpdateRate(uint(id), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Exchange rate updated successfully",
		"data":    rate,
	})
}

// DeactivateRate handles DELETE /rates/:id
func (h *RatesHandler) DeactivateRate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid rate ID",
		})
		return
	}

	if err := h.pricingService.DeactivateRate(uint(id)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Exchange rate deactivated successfully",
	})
}

// ListCurrencies handles GET /currencies
func (h *RatesHandler) ListCurrencies(c *gin.Context) {
	currencies, err := h.pricingService.ActiveCurrencies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list currencies",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Currencies retrieved successfully",
		"data":    currencies,
	})
}
