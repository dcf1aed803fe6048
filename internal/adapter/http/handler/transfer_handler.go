package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/moneymanager/internal/adapter/http/dto"
	"github.com/iho/moneymanager/internal/domain"
	"github.com/iho/moneymanager/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	CreateTransfer(ctx context.Context, ownerID string, input usecase.CreateTransferInput) (*domain.Transfer, error)
	ListTransfersByUser(ctx context.Context, ownerID string) ([]*domain.Transfer, error)
	ListTransfersByAccount(ctx context.Context, accountID string) ([]*domain.Transfer, error)
	ListTransfersByDateRange(ctx context.Context, ownerID string, from, to time.Time) ([]*domain.Transfer, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create moves money between two of the caller's accounts.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	transfer, err := h.transferUC.CreateTransfer(r.Context(), callerID(r), req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Transfer completed successfully", dto.TransferFromDomain(transfer))
}

// List lists the caller's transfers.
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.transferUC.ListTransfersByUser(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccessCount(w, http.StatusOK, "Transfers retrieved successfully",
		dto.TransfersFromDomain(transfers), len(transfers))
}

// ListByAccount lists transfers touching an account on either side.
func (h *TransferHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	transfers, err := h.transferUC.ListTransfersByAccount(r.Context(), chi.URLParam(r, "accountId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccessCount(w, http.StatusOK, "Transfers retrieved successfully",
		dto.TransfersFromDomain(transfers), len(transfers))
}

// ListByDateRange lists transfers between the start and end parameters.
func (h *TransferHandler) ListByDateRange(w http.ResponseWriter, r *http.Request) {
	start, okStart := parseTimeQuery(r, "start")
	end, okEnd := parseTimeQuery(r, "end")
	if !okStart || !okEnd {
		writeBadRequest(w, "start and end must be RFC 3339 timestamps")
		return
	}

	transfers, err := h.transferUC.ListTransfersByDateRange(r.Context(), callerID(r), start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccessCount(w, http.StatusOK, "Transfers retrieved successfully",
		dto.TransfersFromDomain(transfers), len(transfers))
}
