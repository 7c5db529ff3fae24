package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vho0811/blogpost-backend/errs"
	"github.com/vho0811/blogpost-backend/models"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  userStore
}

func newUserHandler(userRepo userStore) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
	}
}

// syncUser upserts the authenticated identity into the local users table
// @Summary Sync authenticated user
// @Description Creates or refreshes the local user record from the session's identity claims
// @Tags Users
// @Produce json
// @Success 200 {object} models.User "Synced user"
// @Failure 401 {object} ErrorResponse "Unauthorized - Missing or invalid session"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Upsert failed"
// @Security BearerAuth
// @Router /auth/sync [post]
func (h userHandler) syncUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ctxGetAuthClaims(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}

		user := models.User{
			AuthProviderID:  claims.Subject,
			Email:           claims.Email,
			Username:        claims.Username,
			FirstName:       claims.FirstName,
			LastName:        claims.LastName,
			ProfileImageURL: claims.ProfileImageURL,
		}

		if err := h.userRepo.Upsert(&user); err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("upsert", "user", err))
			return
		}

		// On a conflicting upsert the in-memory ID is not the row's ID;
		// re-fetch by the provider key so the response carries the real one.
		synced, err := h.userRepo.FindByAuthProviderID(claims.Subject)
		if err != nil {
			h.responder.WriteError(w, errs.NewDatabaseError("find", "user", err))
			return
		}
		if synced == nil {
			h.responder.WriteError(w, errs.NewInternalError("user missing after sync"))
			return
		}

		h.responder.WriteJSON(w, synced)
	}
}

// getMe returns the local record for the authenticated user
// @Summary Get current user
// @Description Returns the synced local user for the active session
// @Tags Users
// @Produce json
// @Success 200 {object} models.User "Current user"
// @Failure 401 {object} ErrorResponse "Unauthorized - Missing or invalid session"
// @Failure 404 {object} ErrorResponse "Not Found - User has not been synced yet"
// @Security BearerAuth
// @Router /me [get]
func (h userHandler) getMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := ctxGetUser(r.Context())
		if err != nil || user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user has not been synced"))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}
