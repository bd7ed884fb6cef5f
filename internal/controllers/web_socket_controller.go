package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"yultimate_hub/internal/auth"
)

// wsWriteWait bounds a single write so a stalled peer cannot hold its writer forever.
const wsWriteWait = 10 * time.Second

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // auth is by token
	},
}

// wsConn serialises writes to one websocket connection.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsConn) WriteJSON(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return w.conn.WriteJSON(v)
}

func (w *wsConn) Close() error {
	return w.conn.Close()
}

// authenticateWebSocket validates the token passed as ?token=, since browsers
// cannot set headers on the upgrade request.
func authenticateWebSocket(c *gin.Context, tokens *auth.TokenManager) (*auth.Claims, error) {
	tokenString := c.Query("token")
	if tokenString == "" {
		logrus.Warn("WebSocket connection attempt: Missing token query parameter.")
		return nil, errors.New("missing authentication token")
	}
	claims, err := tokens.Validate(tokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}

// NotificationsWebSocket streams the caller's new notifications until the client disconnects.
func (h *Handler) NotificationsWebSocket(c *gin.Context) {
	claims, err := authenticateWebSocket(c, h.Tokens)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	raw, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).WithField("person_id", claims.UserID).Error("Failed to upgrade WebSocket connection.")
		return
	}
	conn := &wsConn{conn: raw}
	defer conn.Close()

	h.Hub.Register(claims.UserID, conn)
	defer h.Hub.Unregister(claims.UserID, conn)

	for {
		if _, _, err := raw.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("person_id", claims.UserID).Info("Notification WebSocket closed.")
			} else {
				logrus.WithError(err).WithField("person_id", claims.UserID).Warn("Error reading notification WebSocket.")
			}
			break
		}
	}
	logrus.WithFields(logrus.Fields{
		"person_id": claims.UserID,
		"conn_ptr":  fmt.Sprintf("%p", conn),
	}).Info("Notification WebSocket connection closed.")
}
