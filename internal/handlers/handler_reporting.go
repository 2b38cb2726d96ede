package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/SscSPs/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/profit-and-loss", h.getProfitAndLoss)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/balance-verification", h.getBalanceVerification)
	}
}

// getTrialBalance lists every active account with its balance on the natural side.
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to generate trial balance report")

	tb, err := h.reportingService.TrialBalance(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to generate trial balance report")
		return
	}

	logger.Info("Trial balance report generated successfully", slog.Int("row_count", len(tb.Rows)))
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// getProfitAndLoss reports revenue and expenses of posted entries dated in [from, to].
func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ProfitAndLossParams
	if !bindQuery(c, &params) {
		return
	}
	from, err := dto.ParseReportDate(params.From)
	if err != nil {
		logger.Warn("Invalid from date format", slog.String("from", params.From))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date. Use YYYY-MM-DD"})
		return
	}
	to, err := dto.ParseReportDate(params.To)
	if err != nil {
		logger.Warn("Invalid to date format", slog.String("to", params.To))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date. Use YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("from", params.From), slog.String("to", params.To))
	logger.Info("Received request to generate profit and loss report")

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err, "Failed to generate profit and loss report")
		return
	}

	logger.Info("Profit and loss report generated successfully",
		slog.Int("revenue_accounts", len(report.Revenue)),
		slog.Int("expense_accounts", len(report.Expenses)))
	c.JSON(http.StatusOK, dto.ToProfitAndLossResponse(report))
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	report, err := h.reportingService.BalanceSheet(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to generate balance sheet report")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Balance sheet report generated successfully",
		slog.Int("asset_accounts", len(report.Assets)),
		slog.Int("liability_accounts", len(report.Liabilities)),
		slog.Int("equity_accounts", len(report.Equity)))
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getBalanceVerification compares stored balances with the posted lines.
func (h *reportingHandler) getBalanceVerification(c *gin.Context) {
	drifts, err := h.reportingService.VerifyBalances(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to verify balances")
		return
	}
	if len(drifts) > 0 {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Balance drift detected", slog.Int("accounts", len(drifts)))
	}
	c.JSON(http.StatusOK, dto.BalanceVerificationResponse{Consistent: len(drifts) == 0, Drifts: drifts})
}
