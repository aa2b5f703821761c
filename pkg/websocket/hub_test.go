package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(hub *Hub, userID uint64) *Client {
	return &Client{
		Hub:         hub,
		Send:        make(chan []byte, 16),
		UserID:      userID,
		IdleTimeout: time.Minute,
	}
}

func receiveEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()
	select {
	case raw := <-c.Send:
		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		return env
	case <-time.After(time.Second):
		t.Fatal("сообщение не доставлено")
		return Envelope{}
	}
}

func TestHub_PublishToChannel(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := newTestClient(hub, 1)
	hub.Subscribe(TasksChannel, client)

	err := hub.Publish(TasksChannel, EventTaskCreated, map[string]interface{}{"id": 7})
	require.NoError(t, err)

	env := receiveEnvelope(t, client)
	assert.Equal(t, EventTaskCreated, env.Type)
	assert.NotEmpty(t, env.EventID)
	assert.False(t, env.Timestamp.IsZero())
}

func TestHub_ChannelIsolation(t *testing.T) {
	hub := NewHub(zap.NewNop())
	dept7 := newTestClient(hub, 1)
	dept8 := newTestClient(hub, 2)
	hub.Subscribe(DepartmentChannel(7), dept7)
	hub.Subscribe(DepartmentChannel(8), dept8)

	require.NoError(t, hub.Publish(DepartmentChannel(7), EventChatMessage, "привет"))

	env := receiveEnvelope(t, dept7)
	assert.Equal(t, EventChatMessage, env.Type)

	select {
	case <-dept8.Send:
		t.Fatal("сообщение канала dept:7 попало подписчику dept:8")
	default:
	}
}

func TestHub_PrivateRoomKeys(t *testing.T) {
	assert.Equal(t, "private:abc", PrivateChannel("abc"))
	assert.Equal(t, "dept:42", DepartmentChannel(42))
}

func TestHub_PublishToEmptyChannel(t *testing.T) {
	hub := NewHub(zap.NewNop())
	// Канал без подписчиков — не ошибка, сообщение просто пропадает
	assert.NoError(t, hub.Publish(TasksChannel, EventTaskCreated, nil))
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := newTestClient(hub, 1)
	hub.Subscribe(TasksChannel, client)
	hub.Subscribe(PrivateChannel("room"), client)

	require.Equal(t, 1, hub.SubscriberCount(TasksChannel))
	require.Equal(t, 1, hub.SubscriberCount(PrivateChannel("room")))

	hub.Unsubscribe(client)

	assert.Equal(t, 0, hub.SubscriberCount(TasksChannel))
	assert.Equal(t, 0, hub.SubscriberCount(PrivateChannel("room")))

	// Очередь закрыта
	_, ok := <-client.Send
	assert.False(t, ok)

	// Повторная отписка безопасна
	hub.Unsubscribe(client)
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub(zap.NewNop())
	slow := &Client{Hub: hub, Send: make(chan []byte, 1), UserID: 1, IdleTimeout: time.Minute}
	fast := newTestClient(hub, 2)
	hub.Subscribe(TasksChannel, slow)
	hub.Subscribe(TasksChannel, fast)

	// Забиваем очередь медленного клиента
	require.NoError(t, hub.Publish(TasksChannel, EventTaskCreated, 1))
	require.NoError(t, hub.Publish(TasksChannel, EventTaskCreated, 2))

	// Быстрый клиент получил оба сообщения
	receiveEnvelope(t, fast)
	receiveEnvelope(t, fast)

	// Медленный — только первое, второе потеряно
	receiveEnvelope(t, slow)
	select {
	case <-slow.Send:
		t.Fatal("переполненная очередь должна терять сообщения, а не копить")
	default:
	}
}
