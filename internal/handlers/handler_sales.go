package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/SscSPs/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// salesHandler handles customers, discounts, trade invoices and customer payments.
type salesHandler struct {
	salesService portssvc.SalesSvc
}

func registerSalesRoutes(rg *gin.RouterGroup, salesService portssvc.SalesSvc) {
	h := &salesHandler{salesService: salesService}

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.GET("/:id/invoices", h.listCustomerInvoices)
	}
	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
	}
	discounts := rg.Group("/discounts")
	{
		discounts.POST("", h.createDiscount)
		discounts.GET("", h.listDiscounts)
	}
	rg.POST("/payments", h.recordPayment)
}

func (h *salesHandler) createCustomer(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	customer, err := h.salesService.CreateCustomer(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create customer")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *salesHandler) getCustomer(c *gin.Context) {
	customer, err := h.salesService.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *salesHandler) listCustomers(c *gin.Context) {
	customers, err := h.salesService.ListCustomers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

// listCustomerInvoices lists the invoices of one customer; openOnly=true
// limits it to unpaid and partially paid ones.
func (h *salesHandler) listCustomerInvoices(c *gin.Context) {
	var params dto.ListInvoicesParams
	if !bindQuery(c, &params) {
		return
	}
	params.CustomerID = c.Param("id")
	if _, err := h.salesService.GetCustomer(c.Request.Context(), params.CustomerID); err != nil {
		respondError(c, err, "Failed to retrieve customer")
		return
	}
	h.writeInvoices(c, params)
}

func (h *salesHandler) listInvoices(c *gin.Context) {
	var params dto.ListInvoicesParams
	if !bindQuery(c, &params) {
		return
	}
	h.writeInvoices(c, params)
}

func (h *salesHandler) writeInvoices(c *gin.Context, params dto.ListInvoicesParams) {
	invoices, err := h.salesService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list invoices")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// createInvoice stores a trade invoice and posts it to receivables.
func (h *salesHandler) createInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	invoice, err := h.salesService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Invoice created", slog.String("invoice_no", invoice.InvoiceNo))
	c.JSON(http.StatusCreated, invoice)
}

func (h *salesHandler) createDiscount(c *gin.Context) {
	var req dto.CreateDiscountRequest
	if !bindJSON(c, &req) {
		return
	}
	discount, err := h.salesService.CreateDiscount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create discount")
		return
	}
	c.JSON(http.StatusCreated, discount)
}

func (h *salesHandler) listDiscounts(c *gin.Context) {
	discounts, err := h.salesService.ListDiscounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list discounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"discounts": discounts})
}

// recordPayment applies a customer payment across invoices.
func (h *salesHandler) recordPayment(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	payment, err := h.salesService.RecordPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Customer payment recorded",
		slog.String("customer_id", payment.CustomerID),
		slog.String("journal_number", payment.JournalNumber))
	c.JSON(http.StatusCreated, payment)
}
