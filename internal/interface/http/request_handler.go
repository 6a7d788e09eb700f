package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/skillswap-api/internal/application"
	"github.com/oksasatya/skillswap-api/pkg/response"
)

type RequestHandler struct {
	Requests *application.RequestService
	Logger   *logrus.Logger
}

func NewRequestHandler(requests *application.RequestService, logger *logrus.Logger) *RequestHandler {
	return &RequestHandler{Requests: requests, Logger: logger}
}

type createRequestRequest struct {
	ToUserID string `json:"toUserId"`
	Message  string `json:"message"`
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required,swapstatus"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	var req createRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.Requests.Create(c.Request.Context(), u, req.ToUserID, req.Message)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"request": created}, "request created", nil)
}

func (h *RequestHandler) List(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	list, err := h.Requests.ListForUser(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"requests": list}, "requests", nil)
}

func (h *RequestHandler) SetStatus(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	var req setStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Requests.SetStatus(c.Request.Context(), u, c.Param("requestId"), req.Status)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"request": updated}, "status updated", nil)
}
