package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/skillswap-api/internal/application"
	"github.com/oksasatya/skillswap-api/pkg/response"
)

type UserHandler struct {
	Users  *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(users *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

func (h *UserHandler) Me(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "profile", nil)
}

// UpdateProfile replaces the caller's profile. Fields left out become "".
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	var req application.ProfileInput
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Users.UpdateProfile(c.Request.Context(), u.ID, req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": updated}, "profile updated", nil)
}

func (h *UserHandler) List(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	users, err := h.Users.ListOthers(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users}, "users", nil)
}
