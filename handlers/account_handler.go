package handlers

import (
	"context"
	"net/http"

	"github.com/upb/forum-api/middleware"
	"github.com/upb/forum-api/models"
	"github.com/upb/forum-api/services"
	"github.com/upb/forum-api/utils"
	"go.uber.org/zap"
)

// AccountService defines the account operations used by the HTTP layer
type AccountService interface {
	Register(ctx context.Context, in services.RegisterAccountInput) (*models.Account, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
}

// AccountHandler handles POST /accounts
type AccountHandler struct {
	accounts AccountService
	logger   *zap.Logger
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accounts AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// HandleCreate registers an account. Expects a validated CreateAccountRequest in context.
func (h *AccountHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := middleware.Payload[CreateAccountRequest](r.Context())
	if !ok {
		h.logger.Error("create account payload missing from context",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())))
		_ = utils.WriteInternalServerError(w, "")
		return
	}

	_, err := h.accounts.Register(r.Context(), services.RegisterAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	utils.WriteEmpty(w, http.StatusCreated)
}

// SessionHandler handles POST /sessions
type SessionHandler struct {
	accounts AccountService
	logger   *zap.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(accounts AccountService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// HandleCreate exchanges email/password for an access token
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := middleware.Payload[CreateSessionRequest](r.Context())
	if !ok {
		h.logger.Error("create session payload missing from context",
			zap.String("request_id", middleware.GetRequestIDFromContext(r.Context())))
		_ = utils.WriteInternalServerError(w, "")
		return
	}

	token, err := h.accounts.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteJSON(w, http.StatusCreated, SessionResponse{AccessToken: token}); err != nil {
		h.logger.Error("failed to write session response", zap.Error(err))
	}
}
