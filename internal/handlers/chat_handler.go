package handlers

import (
	"net/http"

	"github.com/gourdmobile/backend/internal/models"
	"github.com/gourdmobile/backend/internal/services"
	"github.com/gourdmobile/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// ChatHandler handles chat messages and conversation listings
type ChatHandler struct {
	chatService *services.ChatService
	log         *logger.Logger
}

func NewChatHandler(chatService *services.ChatService, log *logger.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, log: log.With("handler", "chats")}
}

// RegisterChatRoutes registers chat-related routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/chats/conversations", h.GetConversations)
	g.GET("/chats/user/:userId", h.GetChatsByUser)
	g.GET("/chats/room/:room", h.GetChatsByRoom)
	g.GET("/chats/messages/:senderId/:receiverId", h.GetMessagesBetween)
	g.POST("/chats/messages", h.SendMessage)
	g.PUT("/chats/:id", h.UpdateMessage)
	g.DELETE("/chats/:id", h.DeleteMessage)
}

// GetConversations returns the latest message of every thread in the general room
func (h *ChatHandler) GetConversations(c echo.Context) error {
	conversations, err := h.chatService.Conversations(c.Request().Context())
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, conversations)
}

func (h *ChatHandler) GetChatsByUser(c echo.Context) error {
	userID, err := parseUintParam(c, "userId", "user")
	if err != nil {
		return err
	}
	chats, err := h.chatService.ByUser(c.Request().Context(), userID)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, chats)
}

func (h *ChatHandler) GetChatsByRoom(c echo.Context) error {
	chats, err := h.chatService.ByRoom(c.Request().Context(), c.Param("room"))
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, chats)
}

// GetMessagesBetween returns both directions of a conversation, oldest first
func (h *ChatHandler) GetMessagesBetween(c echo.Context) error {
	senderID, err := parseUintParam(c, "senderId", "sender")
	if err != nil {
		return err
	}
	receiverID, err := parseUintParam(c, "receiverId", "receiver")
	if err != nil {
		return err
	}
	chats, err := h.chatService.Between(c.Request().Context(), senderID, receiverID)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, chats)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req models.CreateChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	chat, err := h.chatService.Create(c.Request().Context(), &req)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusCreated, chat)
}

func (h *ChatHandler) UpdateMessage(c echo.Context) error {
	var req models.UpdateChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	chat, err := h.chatService.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return httpError(h.log, c, err)
	}
	return c.JSON(http.StatusOK, chat)
}

func (h *ChatHandler) DeleteMessage(c echo.Context) error {
	if err := h.chatService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(h.log, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
