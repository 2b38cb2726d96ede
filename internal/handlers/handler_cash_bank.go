package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/SscSPs/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

type cashBankHandler struct {
	cashBankService portssvc.CashBankSvc
}

// registerCashBankRoutes registers cash/bank receipt and payment routes.
func registerCashBankRoutes(rg *gin.RouterGroup, cashBankService portssvc.CashBankSvc) {
	h := &cashBankHandler{cashBankService: cashBankService}

	receipts := rg.Group("/cash-receipts")
	{
		receipts.POST("", h.createReceipt)
		receipts.GET("", h.listReceipts)
		receipts.GET("/:id", h.getReceipt)
	}
	payments := rg.Group("/cash-payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:id", h.getPayment)
	}
}

func (h *cashBankHandler) createReceipt(c *gin.Context) {
	var req dto.CreateCashReceiptRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	receipt, err := h.cashBankService.CreateCashReceipt(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create cash receipt")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Cash receipt created", slog.String("voucher_no", receipt.VoucherNo))
	c.JSON(http.StatusCreated, receipt)
}

func (h *cashBankHandler) getReceipt(c *gin.Context) {
	receipt, err := h.cashBankService.GetCashReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve cash receipt")
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *cashBankHandler) listReceipts(c *gin.Context) {
	var params dto.ListParams
	if !bindQuery(c, &params) {
		return
	}
	receipts, err := h.cashBankService.ListCashReceipts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list cash receipts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"receipts": receipts})
}

func (h *cashBankHandler) createPayment(c *gin.Context) {
	var req dto.CreateCashPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	payment, err := h.cashBankService.CreateCashPayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create cash payment")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Cash payment created", slog.String("voucher_no", payment.VoucherNo))
	c.JSON(http.StatusCreated, payment)
}

func (h *cashBankHandler) getPayment(c *gin.Context) {
	payment, err := h.cashBankService.GetCashPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve cash payment")
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *cashBankHandler) listPayments(c *gin.Context) {
	var params dto.ListParams
	if !bindQuery(c, &params) {
		return
	}
	payments, err := h.cashBankService.ListCashPayments(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list cash payments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
