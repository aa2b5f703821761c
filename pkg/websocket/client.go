package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 4096
)

// Client — одно websocket-подключение пользователя.
type Client struct {
	Hub         *Hub
	Conn        *websocket.Conn
	Send        chan []byte
	UserID      uint64
	IdleTimeout time.Duration

	closed bool // защищён мьютексом хаба
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uint64, idleTimeout time.Duration) *Client {
	return &Client{
		Hub:         hub,
		Conn:        conn,
		Send:        make(chan []byte, 256),
		UserID:      userID,
		IdleTimeout: idleTimeout,
	}
}

// ReadPump читает входящие текстовые кадры и передаёт их в handler.
// Дедлайн чтения служит idle-таймаутом: он продлевается на каждом
// кадре и pong'е, по его истечении соединение рвётся. Любой выход
// из цикла — ошибка, таймаут или закрытие — завершается отпиской.
func (c *Client) ReadPump(handler func(text string)) {
	defer func() {
		c.Hub.Unsubscribe(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(c.IdleTimeout))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(c.IdleTimeout))
		return nil
	})
	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Debug("websocket: соединение закрыто с ошибкой", zap.Error(err))
			}
			break
		}
		_ = c.Conn.SetReadDeadline(time.Now().Add(c.IdleTimeout))
		if handler != nil {
			handler(string(message))
		}
	}
}

// WritePump пишет сообщения из очереди Send и периодически пингует
// клиента. Закрытие Send (в Unsubscribe) завершает цикл.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(message)
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
