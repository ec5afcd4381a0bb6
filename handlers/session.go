package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voicebook/services/assistant"
)

// SessionHandler is the narrow interface the external conversational layer
// uses to drive conversations: open a session, invoke named tools, close.
// Speech, transport and LLM orchestration all live on the caller's side;
// every tool response is a plain speakable string.
type SessionHandler struct {
	Manager *assistant.Manager
}

func NewSessionHandler(m *assistant.Manager) *SessionHandler {
	return &SessionHandler{Manager: m}
}

// OpenSession starts a fresh conversation and returns its id.
func (h *SessionHandler) OpenSession(c *gin.Context) {
	id := "voice-booking-session-" + uuid.New().String()
	if _, err := h.Manager.Open(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": id})
}

// InvokeTool dispatches one named tool call on a live session.
func (h *SessionHandler) InvokeTool(c *gin.Context) {
	sessionID := c.Param("sessionID")
	tool := c.Param("tool")

	a, ok := h.Manager.Get(sessionID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or already closed"})
		return
	}

	// An empty body means a tool without arguments.
	var input struct {
		Args map[string]string `json:"args"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	response := a.Dispatch(c.Request.Context(), tool, input.Args)
	c.JSON(http.StatusOK, gin.H{"response": response})
}

// CloseSession tears a conversation down immediately, skipping the farewell
// grace period. Used when the transport drops the call.
func (h *SessionHandler) CloseSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if !h.Manager.Close(sessionID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found or already closed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"closed": sessionID})
}
