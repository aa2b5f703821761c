package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Hub — реестр активных подключений, сгруппированных по логическим
// каналам ("tasks", "private:<room>", "dept:<id>"). Каналы создаются
// лениво при первой подписке и нигде не сохраняются: после рестарта
// процесса клиенты переподключаются сами.
//
// Реестр — разделяемая мутабельная структура, поэтому все операции
// над ним идут под одним мьютексом.
type Hub struct {
	mu       sync.RWMutex
	channels map[string][]*Client
	logger   *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		channels: make(map[string][]*Client),
		logger:   logger,
	}
}

// Subscribe регистрирует подключение в канале. Повторная регистрация
// одного подключения в одном канале не отслеживается.
func (h *Hub) Subscribe(channel string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.channels[channel] = append(h.channels[channel], client)
	h.logger.Debug("Hub: клиент подписан",
		zap.String("channel", channel),
		zap.Uint64("userID", client.UserID),
	)
}

// Unsubscribe убирает подключение из всех каналов, где оно числится,
// и закрывает его исходящую очередь. Вызывается при закрытии
// транспорта — по ошибке, таймауту или явному разрыву; все три пути
// обязаны сойтись в этом методе.
func (h *Hub) Unsubscribe(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	found := false
	for channel, clients := range h.channels {
		for i, c := range clients {
			if c == client {
				h.channels[channel] = append(clients[:i], clients[i+1:]...)
				found = true
				break
			}
		}
		if len(h.channels[channel]) == 0 {
			delete(h.channels, channel)
		}
	}

	if found && !client.closed {
		close(client.Send)
		client.closed = true
		h.logger.Debug("Hub: клиент отписан", zap.Uint64("userID", client.UserID))
	}
}

// Publish доставляет сообщение всем текущим подписчикам канала в
// порядке регистрации. Доставка best-effort: без подтверждений,
// без повторов и без очередей для отсутствующих подписчиков; если
// исходящая очередь клиента переполнена, сообщение для него теряется.
func (h *Hub) Publish(channel string, messageType string, payload interface{}) error {
	envelope := Envelope{
		EventID:   uuid.New().String(),
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}

	messageBytes, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("Hub: ошибка сериализации сообщения", zap.Error(err))
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.channels[channel] {
		select {
		case client.Send <- messageBytes:
		default:
			h.logger.Warn("Hub: очередь клиента переполнена, сообщение потеряно",
				zap.String("channel", channel),
				zap.Uint64("userID", client.UserID),
			)
		}
	}
	return nil
}

// SubscriberCount возвращает число подписчиков канала.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}
