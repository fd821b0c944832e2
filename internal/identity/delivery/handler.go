package delivery

import (
	"errors"
	"net/http"

	identitydto "recruitbridge-backend/internal/identity/dto"
	"recruitbridge-backend/internal/identity/usecase"

	"github.com/gin-gonic/gin"
)

type IdentityHandler struct {
	identityUsecase usecase.IdentityUsecase
}

func NewIdentityHandler(identityUsecase usecase.IdentityUsecase) *IdentityHandler {
	return &IdentityHandler{
		identityUsecase: identityUsecase,
	}
}

func (h *IdentityHandler) CheckUsername(c *gin.Context) {
	var req identitydto.CheckUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	availability, err := h.identityUsecase.CheckAvailability(userID, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, identitydto.CheckUsernameResponse{
		Available: availability.Available,
		Username:  availability.Username,
		Reason:    availability.Reason,
	})
}

func (h *IdentityHandler) CreateIdentity(c *gin.Context) {
	var req identitydto.CreateIdentityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	identity, mailbox, err := h.identityUsecase.Create(c.Request.Context(), userID, req.Username, req.DisplayName)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUsernameInvalid):
			c.JSON(http.StatusBadRequest, identitydto.IdentityResponse{OK: false, Detail: err.Error()})
		case errors.Is(err, usecase.ErrUsernameTaken), errors.Is(err, usecase.ErrIdentityExists):
			c.JSON(http.StatusConflict, identitydto.IdentityResponse{OK: false, Detail: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, identitydto.IdentityResponse{OK: false, Detail: "failed to create identity"})
		}
		return
	}

	c.JSON(http.StatusOK, identitydto.IdentityResponse{OK: true, Identity: identity, Mailbox: mailbox})
}

func (h *IdentityHandler) GetCurrentIdentity(c *gin.Context) {
	userID := c.GetString("userID")
	identity, mailbox, err := h.identityUsecase.GetCurrent(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if identity == nil {
		c.JSON(http.StatusOK, identitydto.IdentityResponse{OK: false})
		return
	}

	c.JSON(http.StatusOK, identitydto.IdentityResponse{OK: true, Identity: identity, Mailbox: mailbox})
}

func (h *IdentityHandler) CleanupIdentities(c *gin.Context) {
	userID := c.GetString("userID")
	summary, err := h.identityUsecase.Cleanup(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, identitydto.CleanupResponse{OK: true, Kept: summary.Kept, Deleted: summary.Deleted})
}
