package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/skillswap-api/internal/application"
	"github.com/oksasatya/skillswap-api/pkg/response"
)

type MessageHandler struct {
	Messages *application.MessageService
	Logger   *logrus.Logger
}

func NewMessageHandler(messages *application.MessageService, logger *logrus.Logger) *MessageHandler {
	return &MessageHandler{Messages: messages, Logger: logger}
}

type createMessageRequest struct {
	Text string `json:"text"`
}

func (h *MessageHandler) Create(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	var req createMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Messages.Append(c.Request.Context(), u, c.Param("requestId"), req.Text)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": m}, "message sent", nil)
}

func (h *MessageHandler) List(c *gin.Context) {
	u, ok := caller(c)
	if !ok {
		return
	}
	msgs, err := h.Messages.List(c.Request.Context(), u.ID, c.Param("requestId"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": msgs}, "messages", nil)
}
