package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/moneymanager/internal/adapter/http/dto"
	"github.com/iho/moneymanager/internal/domain"
	"github.com/iho/moneymanager/internal/usecase"
)

// LedgerService defines the behavior needed by TransactionHandler.
type LedgerService interface {
	CreateEntry(ctx context.Context, ownerID string, input usecase.CreateEntryInput) (*domain.Entry, error)
	GetEntry(ctx context.Context, ownerID, id string) (*domain.Entry, error)
	ListEntries(ctx context.Context, ownerID string, filter usecase.EntryFilter) ([]*domain.Entry, error)
	UpdateEntry(ctx context.Context, ownerID, id string, input usecase.UpdateEntryInput) (*domain.Entry, error)
	DeleteEntry(ctx context.Context, ownerID, id string) error
}

// TransactionHandler handles income/expense HTTP requests.
type TransactionHandler struct {
	ledgerUC LedgerService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(ledgerUC LedgerService) *TransactionHandler {
	return &TransactionHandler{ledgerUC: ledgerUC}
}

// Create records a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	entry, err := h.ledgerUC.CreateEntry(r.Context(), callerID(r), req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Transaction created successfully", dto.EntryFromDomain(entry))
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.ledgerUC.GetEntry(r.Context(), callerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Transaction retrieved successfully", dto.EntryFromDomain(entry))
}

// List lists the caller's transactions, optionally bounded by a date range.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, usecase.EntryFilter{})
}

// ListByType lists transactions of one kind.
func (h *TransactionHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, usecase.EntryFilter{Kind: chi.URLParam(r, "type")})
}

// ListByCategory lists transactions of one category.
func (h *TransactionHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, usecase.EntryFilter{Category: chi.URLParam(r, "category")})
}

// ListByDivision lists transactions of one division.
func (h *TransactionHandler) ListByDivision(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, usecase.EntryFilter{Division: chi.URLParam(r, "division")})
}

// ListByDateRange lists transactions between the start and end parameters.
func (h *TransactionHandler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	start, okStart := parseTimeQuery(r, "start")
	end, okEnd := parseTimeQuery(r, "end")
	if !okStart || !okEnd {
		writeBadRequest(w, "start and end must be RFC 3339 timestamps")
		return
	}

	h.listFiltered(w, r, usecase.EntryFilter{From: &start, To: &end})
}

func (h *TransactionHandler) listFiltered(w http.ResponseWriter, r *http.Request, filter usecase.EntryFilter) {
	entries, err := h.ledgerUC.ListEntries(r.Context(), callerID(r), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccessCount(w, http.StatusOK, "Transactions retrieved successfully",
		dto.EntriesFromDomain(entries), len(entries))
}

// Update edits a transaction while its edit window is open.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	entry, err := h.ledgerUC.UpdateEntry(r.Context(), callerID(r), chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Transaction updated successfully", dto.EntryFromDomain(entry))
}

// Delete soft-deletes a transaction.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgerUC.DeleteEntry(r.Context(), callerID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Transaction deleted successfully", nil)
}
