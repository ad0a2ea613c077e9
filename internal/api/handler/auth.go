package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/tkanda-dev/mediavault/internal/domain/model"
	"github.com/tkanda-dev/mediavault/internal/domain/repository"
	"github.com/tkanda-dev/mediavault/internal/usecase"
)

// Request/Response types

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	AsAdmin  bool   `json:"as_admin"`
}

type AccountResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Count    int               `json:"count"`
}

// AuthHandler handles account registration and login requests.
type AuthHandler struct {
	svc usecase.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc usecase.AccountService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register handles POST /v1/accounts
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	account, err := h.svc.Register(r.Context(), usecase.RegisterAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusCreated, toAccountResponse(account))
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	account, err := h.svc.Authenticate(r.Context(), req.Email, req.Password, req.AsAdmin)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	JSON(w, http.StatusOK, toAccountResponse(account))
}

// List handles GET /v1/accounts
func (h *AuthHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	resp := ListAccountsResponse{
		Accounts: make([]AccountResponse, 0, len(accounts)),
		Count:    len(accounts),
	}
	for _, account := range accounts {
		resp.Accounts = append(resp.Accounts, toAccountResponse(account))
	}

	JSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrEmptyEmail):
		Error(w, http.StatusBadRequest, "invalid_email", "Email cannot be empty")
	case errors.Is(err, model.ErrEmptyPassword):
		Error(w, http.StatusBadRequest, "invalid_password", "Password cannot be empty")
	case errors.Is(err, model.ErrPasswordTooShort):
		Error(w, http.StatusBadRequest, "invalid_password", "Password is too short")
	case errors.Is(err, repository.ErrDuplicateEmail):
		Error(w, http.StatusConflict, "duplicate_email", "Email is already registered")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		Error(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
	case errors.Is(err, usecase.ErrAdminRequired):
		Error(w, http.StatusForbidden, "admin_required", "Account is not an administrator")
	default:
		Error(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
	}
}

func toAccountResponse(account *model.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		IsAdmin:   account.IsAdmin,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
	}
}
