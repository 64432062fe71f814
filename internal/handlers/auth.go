package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-organizer-api/internal/constants"
	"github.com/yukikurage/task-organizer-api/internal/dto"
	apierrors "github.com/yukikurage/task-organizer-api/internal/errors"
	"github.com/yukikurage/task-organizer-api/internal/middleware"
	"github.com/yukikurage/task-organizer-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService  *services.AuthService
	sessionStore sessions.Store
}

// NewAuthHandler creates a new AuthHandler. store must be the store the
// session middleware was installed with.
func NewAuthHandler(authService *services.AuthService, store sessions.Store) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		sessionStore: store,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Register creates a new user and logs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if !h.startSession(c, user.ID) {
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Message: "Registration successful",
		User:    dto.ToUserDTO(*user),
	})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	if !h.startSession(c, user.ID) {
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Message: "Login successful",
		User:    dto.ToUserDTO(*user),
	})
}

// Logout removes the authentication session. Logging out without a session
// succeeds as well.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("Failed to clear session: %v", err)
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// CheckAuth returns the authenticated user.
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			// The account is gone; drop the stale session.
			session := sessions.Default(c)
			session.Clear()
			_ = session.Save()
			apierrors.Unauthorized(c, "")
			return
		}
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckAuthResponse{
		IsAuthenticated: true,
		User:            dto.ToUserDTO(*user),
	})
}

// DeleteAccount removes the current user with all tasks and tags.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.authService.DeleteAccount(userID); err != nil && !errors.Is(err, services.ErrUserNotFound) {
		respondAuthError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("Failed to clear session: %v", err)
	}

	c.Status(http.StatusNoContent)
}

// startSession logs userID in under a newly issued session id. Any session
// the client arrived with is destroyed first.
func (h *AuthHandler) startSession(c *gin.Context, userID uint64) bool {
	if _, err := c.Cookie(constants.SessionCookieName); err == nil {
		previous := sessions.Default(c)
		previous.Clear()
		previous.Options(sessions.Options{Path: "/", MaxAge: -1})
		if err := previous.Save(); err != nil {
			log.Printf("Failed to destroy previous session: %v", err)
			apierrors.InternalError(c, "Failed to save session")
			return false
		}
	}

	// Without the old cookie the store hands out an empty session with no id.
	req := c.Request.Clone(c.Request.Context())
	req.Header.Del("Cookie")
	fresh, err := h.sessionStore.New(req, constants.SessionCookieName)
	if err != nil {
		log.Printf("Failed to create session: %v", err)
		apierrors.InternalError(c, "Failed to save session")
		return false
	}

	fresh.Values[constants.ContextKeyUserID] = userID
	if err := fresh.Save(c.Request, c.Writer); err != nil {
		log.Printf("Failed to save session: %v", err)
		apierrors.InternalError(c, "Failed to save session")
		return false
	}
	return true
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingCredentials):
		apierrors.MissingField(c, err.Error())
	case errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrPasswordTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.Unauthorized(c, "")
	default:
		log.Printf("Auth request failed: %v", err)
		apierrors.InternalError(c, "")
	}
}
