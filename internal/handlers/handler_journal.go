package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
	"github.com/SscSPs/backoffice/internal/dto"
	"github.com/SscSPs/backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler exposes the posting engine.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
	numberService  portssvc.VoucherNumberSvc
}

func newJournalHandler(js portssvc.JournalSvcFacade, ns portssvc.VoucherNumberSvc) *journalHandler {
	return &journalHandler{journalService: js, numberService: ns}
}

// registerJournalRoutes registers journal and voucher number routes.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, numberService portssvc.VoucherNumberSvc) {
	h := newJournalHandler(journalService, numberService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:id", h.getJournal)
		journals.PATCH("/:id", h.updateJournal)
		journals.POST("/:id/reverse", h.reverseJournal)
	}
	rg.GET("/voucher-numbers/:prefix", h.nextVoucherNumber)
}

// createJournal stores a Draft or Posted entry. A posted entry moves balances.
func (h *journalHandler) createJournal(c *gin.Context) {
	var req dto.CreateJournalRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	input, err := req.ToCreateEntryInput(userID)
	if err != nil {
		respondError(c, err, "Failed to create journal")
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to create journal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalResponse(entry))
}

func (h *journalHandler) getJournal(c *gin.Context) {
	entry, err := h.journalService.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// listJournals returns one page of entries, newest first.
func (h *journalHandler) listJournals(c *gin.Context) {
	var params dto.ListJournalsParams
	if !bindQuery(c, &params) {
		return
	}

	var status domain.EntryStatus
	if params.Status != "" {
		parsed, err := domain.ParseEntryStatus(params.Status)
		if err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid status filter", slog.String("status", params.Status))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		status = parsed
	}

	entries, next, err := h.journalService.ListEntries(c.Request.Context(), domain.ListEntriesParams{
		Status:    status,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	})
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalsResponse(entries, next))
}

// updateJournal patches an entry and returns its new state.
func (h *journalHandler) updateJournal(c *gin.Context) {
	id := c.Param("id")
	var req dto.UpdateJournalRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	patch, err := req.ToEntryPatch(userID)
	if err != nil {
		respondError(c, err, "Failed to update journal")
		return
	}
	if err := h.journalService.UpdateEntry(c.Request.Context(), id, patch); err != nil {
		respondError(c, err, "Failed to update journal")
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(entry))
}

// reverseJournal reverses a posted entry and returns the draft mirror's id.
func (h *journalHandler) reverseJournal(c *gin.Context) {
	id := c.Param("id")
	var req dto.ReverseJournalRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	newID, err := h.journalService.ReverseEntry(c.Request.Context(), id, req.CancelReason, userID)
	if err != nil {
		respondError(c, err, "Failed to reverse journal")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal reversed",
		slog.String("journal_id", id),
		slog.String("new_entry_id", newID))
	c.JSON(http.StatusCreated, dto.ReverseJournalResponse{NewEntryID: newID})
}

// nextVoucherNumber previews the next number of a voucher series.
func (h *journalHandler) nextVoucherNumber(c *gin.Context) {
	prefix := c.Param("prefix")
	number, err := h.numberService.NextVoucherNumber(c.Request.Context(), prefix)
	if err != nil {
		respondError(c, err, "Failed to generate voucher number")
		return
	}
	c.JSON(http.StatusOK, dto.VoucherNumberResponse{Prefix: prefix, Number: number})
}
