package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ecomstack/account-api/internal/api/shared"
	"github.com/ecomstack/account-api/internal/service"
)

// AccountHandler handles account-related API requests.
type AccountHandler struct {
	accountService service.AccountService
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewAccountHandler creates a new AccountHandler with the given dependencies.
// If logger is nil, the default logger is used.
func NewAccountHandler(accountService service.AccountService, logger *slog.Logger) *AccountHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &AccountHandler{
		accountService: accountService,
		validator:      validator.New(),
		logger:         logger.With(slog.String("component", "account_handler")),
	}
}

// Register handles POST /api/users/register.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	account, err := h.accountService.Register(r.Context(), service.RegisterParams{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewAccountResponse(account))
}

// GetByID handles GET /api/users/{id}.
// The lookup is unconditional: inactive accounts are returned too.
func (h *AccountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid account ID")
		return
	}

	account, err := h.accountService.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewAccountResponse(account))
}

// GetByUsername handles GET /api/users/username/{username}.
func (h *AccountHandler) GetByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Username is required")
		return
	}

	account, err := h.accountService.GetByUsername(r.Context(), username)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewAccountResponse(account))
}

// ListActive handles GET /api/users/active.
func (h *AccountHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.ListActive(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewAccountListResponse(accounts))
}

// Update handles PUT /api/users/{id}. Absent fields are left unchanged;
// identity fields and the active flag cannot be modified here.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid account ID")
		return
	}

	var req UpdateAccountRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	account, err := h.accountService.Update(r.Context(), id, service.UpdateParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewAccountResponse(account))
}

// Deactivate handles DELETE /api/users/{id}. Accounts are soft-deactivated,
// never removed; repeating the call succeeds.
func (h *AccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid account ID")
		return
	}

	if err := h.accountService.Deactivate(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Account deactivated successfully"})
}

// CountActive handles GET /api/users/stats/total. The body is the bare
// integer count.
func (h *AccountHandler) CountActive(w http.ResponseWriter, r *http.Request) {
	count, err := h.accountService.CountActive(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, count)
}
