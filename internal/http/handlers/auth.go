package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/hongminglow/authgate/internal/auth"
	"github.com/hongminglow/authgate/internal/http/respond"
	"github.com/hongminglow/authgate/internal/logutil"
	"github.com/hongminglow/authgate/internal/models"
	"github.com/hongminglow/authgate/internal/models/dto"
	"github.com/hongminglow/authgate/internal/storage"
)

const (
	msgInvalidJSON        = "Invalid JSON payload"
	msgMissingField       = "All fields required"
	msgDuplicateUser      = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgRegisterFailed     = "Server error during registration"
	msgLoginFailed        = "Server error during login"
	msgMissingToken       = "No token"
	msgInvalidToken       = "Invalid token"
	msgAccessGranted      = "Access granted"
)

// AuthHandler owns the register, login and protected endpoints.
type AuthHandler struct {
	store  storage.UserStore
	tokens *auth.TokenManager
	hasher *auth.PasswordHasher
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, tokens *auth.TokenManager, hasher *auth.PasswordHasher) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens, hasher: hasher}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(router *httprouter.Router) {
	router.HandlerFunc(http.MethodPost, "/api/register", h.handleRegister)
	router.HandlerFunc(http.MethodPost, "/api/login", h.handleLogin)
	router.HandlerFunc(http.MethodGet, "/api/protected", h.handleProtected)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	log := logutil.GetOrDefault(r.Context())
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respond.Error(w, r, http.StatusBadRequest, msgMissingField)
		return
	}

	_, err := h.store.FindByEmail(r.Context(), req.Email)
	switch {
	case err == nil:
		respond.Error(w, r, http.StatusBadRequest, msgDuplicateUser)
		return
	case !errors.Is(err, storage.ErrNotFound):
		log.Error().Err(err).Msg("register: lookup user")
		respond.Error(w, r, http.StatusInternalServerError, msgRegisterFailed)
		return
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("register: hash password")
		respond.Error(w, r, http.StatusInternalServerError, msgRegisterFailed)
		return
	}

	created, err := h.store.CreateUser(r.Context(), models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// A concurrent registration can slip past the lookup above; the
		// store's unique constraint catches it here.
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Error(w, r, http.StatusBadRequest, msgDuplicateUser)
			return
		}
		log.Error().Err(err).Msg("register: create user")
		respond.Error(w, r, http.StatusInternalServerError, msgRegisterFailed)
		return
	}

	log.Info().Str("user_id", created.ID).Msg("user registered")
	respond.JSON(w, r, http.StatusOK, dto.RegisterResponse{Success: true, UserID: created.ID})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	log := logutil.GetOrDefault(r.Context())
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, msgInvalidJSON)
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Error(w, r, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	user, err := h.store.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, r, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}
		log.Error().Err(err).Msg("login: lookup user")
		respond.Error(w, r, http.StatusInternalServerError, msgLoginFailed)
		return
	}
	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		respond.Error(w, r, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Msg("login: issue token")
		respond.Error(w, r, http.StatusInternalServerError, msgLoginFailed)
		return
	}
	respond.JSON(w, r, http.StatusOK, dto.LoginResponse{Token: token, User: user.Profile()})
}

func (h *AuthHandler) handleProtected(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if header == "" {
		respond.Error(w, r, http.StatusUnauthorized, msgMissingToken)
		return
	}
	userID, err := h.tokens.Verify(bearerToken(header))
	if err != nil {
		respond.Error(w, r, http.StatusForbidden, msgInvalidToken)
		return
	}
	respond.JSON(w, r, http.StatusOK, dto.ProtectedResponse{Message: msgAccessGranted, UserID: userID})
}

// bearerToken returns the second space-separated field of an Authorization
// header, or "" when there is none. The scheme itself is not checked.
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
