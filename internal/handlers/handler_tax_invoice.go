package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/gin-gonic/gin"
)

type taxInvoiceHandler struct {
	taxService portssvc.TaxInvoiceSvc
}

func registerTaxInvoiceRoutes(rg *gin.RouterGroup, taxService portssvc.TaxInvoiceSvc) {
	h := &taxInvoiceHandler{taxService: taxService}

	sales := rg.Group("/tax-invoices")
	{
		sales.POST("", h.createTaxInvoice)
		sales.GET("", h.listTaxInvoices)
		sales.GET("/:id", h.getTaxInvoice)
		sales.POST("/:id/post", h.postTaxInvoice)
	}
	purchases := rg.Group("/purchase-tax-invoices")
	{
		purchases.POST("", h.createPurchaseTaxInvoice)
		purchases.GET("", h.listPurchaseTaxInvoices)
		purchases.GET("/:id", h.getPurchaseTaxInvoice)
		purchases.POST("/:id/post", h.postPurchaseTaxInvoice)
	}
}

func (h *taxInvoiceHandler) createTaxInvoice(c *gin.Context) {
	var req dto.CreateTaxInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	ti, err := h.taxService.CreateTaxInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create tax invoice")
		return
	}
	c.JSON(http.StatusCreated, ti)
}

func (h *taxInvoiceHandler) getTaxInvoice(c *gin.Context) {
	ti, err := h.taxService.GetTaxInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve tax invoice")
		return
	}
	c.JSON(http.StatusOK, ti)
}

func (h *taxInvoiceHandler) listTaxInvoices(c *gin.Context) {
	list, err := h.taxService.ListTaxInvoices(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list tax invoices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"taxInvoices": list})
}

func (h *taxInvoiceHandler) postTaxInvoice(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	ti, err := h.taxService.PostTaxInvoice(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to post tax invoice")
		return
	}
	c.JSON(http.StatusOK, ti)
}

func (h *taxInvoiceHandler) createPurchaseTaxInvoice(c *gin.Context) {
	var req dto.CreatePurchaseTaxInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	pi, err := h.taxService.CreatePurchaseTaxInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create purchase tax invoice")
		return
	}
	c.JSON(http.StatusCreated, pi)
}

func (h *taxInvoiceHandler) getPurchaseTaxInvoice(c *gin.Context) {
	pi, err := h.taxService.GetPurchaseTaxInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve purchase tax invoice")
		return
	}
	c.JSON(http.StatusOK, pi)
}

func (h *taxInvoiceHandler) listPurchaseTaxInvoices(c *gin.Context) {
	list, err := h.taxService.ListPurchaseTaxInvoices(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list purchase tax invoices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchaseTaxInvoices": list})
}

func (h *taxInvoiceHandler) postPurchaseTaxInvoice(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	pi, err := h.taxService.PostPurchaseTaxInvoice(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to post purchase tax invoice")
		return
	}
	c.JSON(http.StatusOK, pi)
}
