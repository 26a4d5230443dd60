package handler

import (
	"net/http"
	"net/url"
	"time"

	"vbanking/internal/domain"
	"vbanking/internal/service"

	"github.com/gorilla/mux"
)

type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

type CreateAccountRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

type CreateAccountResponse struct {
	ID string `json:"id"`
}

type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

func toAccountResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID.String(),
		Name:      account.Name,
		Document:  account.Document,
		Balance:   account.Balance.StringFixed(2),
		CreatedAt: account.CreatedAt,
		IsActive:  account.IsActive,
	}
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	id, err := h.accountService.CreateAccount(r.Context(), req.Name, req.Document)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Location", "/api/accounts/"+url.PathEscape(req.Document))
	writeJSON(w, http.StatusCreated, CreateAccountResponse{ID: id.String()})
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	document := mux.Vars(r)["document"]

	account, err := h.accountService.GetAccount(r.Context(), document)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAccountResponse(account))
}

func (h *AccountHandler) SearchAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.SearchAccounts(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, toAccountResponse(account))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *AccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	document := mux.Vars(r)["document"]

	if err := h.accountService.Deactivate(r.Context(), document); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
