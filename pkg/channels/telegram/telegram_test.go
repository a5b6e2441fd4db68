package telegram_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/channels/telegram"
	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/notifications"
)

func TestNewAdapterRequiresToken(t *testing.T) {
	_, err := telegram.NewAdapter(telegram.Config{})
	assert.ErrorIs(t, err, telegram.ErrMissingBotToken)
}

func TestAdapterChannel(t *testing.T) {
	adapter, err := telegram.NewAdapter(telegram.Config{BotToken: "t"})
	require.NoError(t, err)
	assert.Equal(t, notifications.ChannelTelegram, adapter.Channel())
}

func TestAttemptDeliver(t *testing.T) {
	payload := notifications.Payload{
		Title:   "Order status updated",
		Message: "Order o1 moved from PAID to SHIPPED",
	}

	t.Run("sends sendMessage request for the recipient chat", func(t *testing.T) {
		var got map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/bottest-token/sendMessage", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		adapter, err := telegram.NewAdapter(
			telegram.Config{BotToken: "test-token"},
			telegram.WithAPIBase(server.URL),
		)
		require.NoError(t, err)

		require.NoError(t, adapter.AttemptDeliver(context.Background(), "12345", payload))
		assert.Equal(t, "12345", got["chat_id"])
		assert.Equal(t, "HTML", got["parse_mode"])
		assert.Contains(t, got["text"], "Order status updated")
		assert.Contains(t, got["text"], "moved from PAID to SHIPPED")
	})

	t.Run("maps api error to delivery failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
		}))
		defer server.Close()

		adapter, err := telegram.NewAdapter(
			telegram.Config{BotToken: "test-token"},
			telegram.WithAPIBase(server.URL),
		)
		require.NoError(t, err)

		err = adapter.AttemptDeliver(context.Background(), "missing", payload)
		require.Error(t, err)
		assert.ErrorIs(t, err, telegram.ErrDeliveryFailed)
		assert.Contains(t, err.Error(), "chat not found")
	})

	t.Run("maps transport failure to delivery failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused

		adapter, err := telegram.NewAdapter(
			telegram.Config{BotToken: "test-token"},
			telegram.WithAPIBase(server.URL),
		)
		require.NoError(t, err)

		err = adapter.AttemptDeliver(context.Background(), "12345", payload)
		assert.ErrorIs(t, err, telegram.ErrDeliveryFailed)
	})
}
