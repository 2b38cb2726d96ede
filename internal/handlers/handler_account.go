package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/SscSPs/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code", h.getAccount)
		accounts.PATCH("/:code", h.updateAccount)
		accounts.DELETE("/:code", h.deactivateAccount)
	}
}

// createAccount adds an account to the chart. Its balance starts at zero.
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.String("account_code", req.Code))

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_code", account.Code))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccount(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts returns the chart ordered by code; inactive accounts only on request.
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if !bindQuery(c, &params) {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.IncludeInactive)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Accounts listed", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// updateAccount renames an account or moves it under another parent.
func (h *accountHandler) updateAccount(c *gin.Context) {
	code := c.Param("code")
	var req dto.UpdateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), code, req, userID)
	if err != nil {
		respondError(c, err, "Failed to update account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account updated successfully", slog.String("account_code", code))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount soft-deletes an account.
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	code := c.Param("code")
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), code, userID); err != nil {
		respondError(c, err, "Failed to deactivate account")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account deactivated successfully", slog.String("account_code", code))
	c.Status(http.StatusNoContent)
}
