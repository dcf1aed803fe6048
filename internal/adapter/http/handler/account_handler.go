package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/moneymanager/internal/adapter/http/dto"
	"github.com/iho/moneymanager/internal/domain"
	"github.com/iho/moneymanager/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, ownerID string, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, ownerID, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context, ownerID string) ([]*domain.Account, error)
	ListActiveAccounts(ctx context.Context, ownerID string) ([]*domain.Account, error)
	UpdateAccount(ctx context.Context, ownerID, id string, input usecase.UpdateAccountInput) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, ownerID, id string) error
	TotalBalance(ctx context.Context, ownerID string) (decimal.Decimal, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), callerID(r), req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, "Account created successfully", dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.GetAccount(r.Context(), callerID(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Account retrieved successfully", dto.AccountFromDomain(account))
}

// List lists all accounts of the caller.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUC.ListAccounts(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccessCount(w, http.StatusOK, "Accounts retrieved successfully",
		dto.AccountsFromDomain(accounts), len(accounts))
}

// ListActive lists the caller's active accounts.
func (h *AccountHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUC.ListActiveAccounts(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccessCount(w, http.StatusOK, "Active accounts retrieved successfully",
		dto.AccountsFromDomain(accounts), len(accounts))
}

// Update updates account metadata.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	account, err := h.accountUC.UpdateAccount(r.Context(), callerID(r), chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Account updated successfully", dto.AccountFromDomain(account))
}

// Deactivate soft-deactivates an account.
func (h *AccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.accountUC.DeactivateAccount(r.Context(), callerID(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Account deactivated successfully", nil)
}

// TotalBalance sums the caller's active account balances.
func (h *AccountHandler) TotalBalance(w http.ResponseWriter, r *http.Request) {
	total, err := h.accountUC.TotalBalance(r.Context(), callerID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Total balance calculated successfully",
		dto.TotalBalanceResponse{TotalBalance: total})
}
