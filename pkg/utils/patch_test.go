package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchPayload struct {
	Title      *string `json:"title"`
	AssignedTo *uint64 `json:"assigned_to_id"`
}

func bindTestContext(body string) echo.Context {
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestBindPatch(t *testing.T) {
	t.Run("distinguishes null from absent", func(t *testing.T) {
		var payload patchPayload
		sent, err := BindPatch(bindTestContext(`{"assigned_to_id": null}`), &payload)
		require.NoError(t, err)

		_, assignedSent := sent["assigned_to_id"]
		_, titleSent := sent["title"]
		assert.True(t, assignedSent)
		assert.False(t, titleSent)
		assert.Nil(t, payload.AssignedTo)
	})

	t.Run("fills provided fields", func(t *testing.T) {
		var payload patchPayload
		sent, err := BindPatch(bindTestContext(`{"title": "Новое название"}`), &payload)
		require.NoError(t, err)

		require.NotNil(t, payload.Title)
		assert.Equal(t, "Новое название", *payload.Title)
		assert.Contains(t, sent, "title")
	})

	t.Run("empty body is an empty patch", func(t *testing.T) {
		var payload patchPayload
		sent, err := BindPatch(bindTestContext(""), &payload)
		require.NoError(t, err)
		assert.Empty(t, sent)
	})

	t.Run("malformed json", func(t *testing.T) {
		var payload patchPayload
		_, err := BindPatch(bindTestContext(`{"title":`), &payload)
		assert.Error(t, err)
	})
}
