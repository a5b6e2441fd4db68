package notifications_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/notifications"
)

func testPayload(recipients []string, channels []notifications.Channel) notifications.Payload {
	return notifications.Payload{
		Title:      "Order status updated",
		Message:    "Order o1 moved from PENDING_ADMIN to PAID",
		Type:       notifications.TypeOrderStatusChanged,
		Priority:   notifications.PriorityHigh,
		Recipients: recipients,
		Channels:   channels,
	}
}

// panicChannel simulates a buggy adapter.
type panicChannel struct{ tag notifications.Channel }

func (c panicChannel) Channel() notifications.Channel { return c.tag }

func (c panicChannel) AttemptDeliver(ctx context.Context, recipientID string, payload notifications.Payload) error {
	panic("nil map write")
}

// failingAudit always rejects the write.
type failingAudit struct{}

func (failingAudit) Save(ctx context.Context, record notifications.AuditRecord) error {
	return errors.New("audit store unavailable")
}

func TestNewDispatcher(t *testing.T) {
	t.Run("requires at least one adapter", func(t *testing.T) {
		_, err := notifications.NewDispatcher(nil)
		assert.ErrorIs(t, err, notifications.ErrNoChannelAdapters)
	})
}

func TestSend(t *testing.T) {
	ctx := context.Background()

	t.Run("produces one result per recipient-channel pair", func(t *testing.T) {
		push := notifications.NewMemoryChannel(notifications.ChannelPush)
		email := notifications.NewMemoryChannel(notifications.ChannelEmail)
		d, err := notifications.NewDispatcher([]notifications.ChannelDeliverer{push, email})
		require.NoError(t, err)

		results, err := d.Send(ctx, testPayload(
			[]string{"u1", "u2", "u3"},
			[]notifications.Channel{notifications.ChannelPush, notifications.ChannelEmail},
		))
		require.NoError(t, err)
		require.Len(t, results, 6)
		for _, r := range results {
			assert.True(t, r.Success, "pair %s/%s", r.RecipientID, r.Channel)
			assert.Empty(t, r.Error)
		}

		assert.Len(t, push.Deliveries(), 3)
		assert.Len(t, email.Deliveries(), 3)
	})

	t.Run("isolates a failing pair from the rest", func(t *testing.T) {
		push := notifications.NewMemoryChannel(notifications.ChannelPush,
			notifications.WithFailureFor("u2", errors.New("socket gone")),
		)
		d, err := notifications.NewDispatcher([]notifications.ChannelDeliverer{push})
		require.NoError(t, err)

		results, err := d.Send(ctx, testPayload(
			[]string{"u1", "u2", "u3"},
			[]notifications.Channel{notifications.ChannelPush},
		))
		require.NoError(t, err)
		require.Len(t, results, 3)

		byRecipient := make(map[string]notifications.Result, len(results))
		for _, r := range results {
			byRecipient[r.RecipientID] = r
		}
		assert.True(t, byRecipient["u1"].Success)
		assert.True(t, byRecipient["u3"].Success)
		assert.False(t, byRecipient["u2"].Success)
		assert.Contains(t, byRecipient["u2"].Error, "socket gone")
	})

	t.Run("fails fast on an invalid payload with zero attempts", func(t *testing.T) {
		push := notifications.NewMemoryChannel(notifications.ChannelPush)
		d, err := notifications.NewDispatcher([]notifications.ChannelDeliverer{push})
		require.NoError(t, err)

		invalid := []notifications.Payload{
			testPayload(nil, []notifications.Channel{notifications.ChannelPush}),
			testPayload([]string{"u1"}, nil),
			{Message: "m", Recipients: []string{"u1"}, Channels: []notifications.Channel{notifications.ChannelPush}},
			{Title: "t", Recipients: []string{"u1"}, Channels: []notifications.Channel{notifications.ChannelPush}},
		}
		for _, payload := range invalid {
			results, err := d.Send(ctx, payload)
			assert.ErrorIs(t, err, notifications.ErrInvalidPayload)
			assert.Nil(t, results)
		}
		assert.Empty(t, push.Deliveries())
	})

	t.Run("skips unrecognized channels without a result entry", func(t *testing.T) {
		push := notifications.NewMemoryChannel(notifications.ChannelPush)
		d, err := notifications.NewDispatcher([]notifications.ChannelDeliverer{push})
		require.NoError(t, err)

		results, err := d.Send(ctx, testPayload(
			[]string{"u1"},
			[]notifications.Channel{notifications.ChannelPush, "CARRIER_PIGEON", notifications.ChannelEmail},
		))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, notifications.ChannelPush, results[0].Channel)
	})

	t.Run("a slow channel does not corrupt fast channel results", func(t *testing.T) {
		slow := notifications.NewMemoryChannel(notifications.ChannelEmail,
			notifications.WithDeliveryDelay(100*time.Millisecond),
		)
		fast := notifications.NewMemoryChannel(notifications.ChannelPush)
		d, err := notifications.NewDispatcher([]notifications.ChannelDeliverer{slow, fast})
		require.NoError(t, err)

		start := time.Now()
		results, err := d.Send(ctx, testPayload(
			[]string{"u1", "u2"},
			[]notifications.Channel{notifications.ChannelPush, notifications.ChannelEmail},
		))
		require.NoError(t, err)
		require.Len(t, results, 4)
		for _, r := range results {
			assert.True(t, r.Success)
		}
		// Pairs run concurrently: two slow attempts must not serialize.
		assert.Less(t, time.Since(start), 190*time.Millisecond)
	})

	t.Run("converts an adapter panic into a failed result for that pair only", func(t *testing.T) {
		boom := panicChannel{tag: notifications.ChannelTelegram}
		push := notifications.NewMemoryChannel(notifications.ChannelPush)
		d, err := notifications.NewDispatcher([]notifications.ChannelDeliverer{boom, push})
		require.NoError(t, err)

		results, err := d.Send(ctx, testPayload(
			[]string{"u1"},
			[]notifications.Channel{notifications.ChannelTelegram, notifications.ChannelPush},
		))
		require.NoError(t, err)
		require.Len(t, results, 2)

		byChannel := make(map[notifications.Channel]notifications.Result, len(results))
		for _, r := range results {
			byChannel[r.Channel] = r
		}
		assert.False(t, byChannel[notifications.ChannelTelegram].Success)
		assert.Contains(t, byChannel[notifications.ChannelTelegram].Error, "panic")
		assert.True(t, byChannel[notifications.ChannelPush].Success)
	})

	t.Run("assigns an id when the payload has none", func(t *testing.T) {
		push := notifications.NewMemoryChannel(notifications.ChannelPush)
		d, err := notifications.NewDispatcher([]notifications.ChannelDeliverer{push})
		require.NoError(t, err)

		_, err = d.Send(ctx, testPayload([]string{"u1"}, []notifications.Channel{notifications.ChannelPush}))
		require.NoError(t, err)

		deliveries := push.Deliveries()
		require.Len(t, deliveries, 1)
		assert.NotEmpty(t, deliveries[0].Payload.ID)
		assert.False(t, deliveries[0].Payload.CreatedAt.IsZero())
	})
}

func TestSendAudit(t *testing.T) {
	ctx := context.Background()

	t.Run("records the full dispatch trace", func(t *testing.T) {
		audit := notifications.NewMemoryAudit()
		push := notifications.NewMemoryChannel(notifications.ChannelPush,
			notifications.WithFailureFor("u2", errors.New("offline")),
		)
		d, err := notifications.NewDispatcher(
			[]notifications.ChannelDeliverer{push},
			notifications.WithAuditStorage(audit),
		)
		require.NoError(t, err)

		results, err := d.Send(ctx, testPayload([]string{"u1", "u2"}, []notifications.Channel{notifications.ChannelPush}))
		require.NoError(t, err)

		records := audit.Records()
		require.Len(t, records, 1)
		assert.NotEmpty(t, records[0].ID)
		assert.ElementsMatch(t, results, records[0].Results)
		assert.Equal(t, "Order status updated", records[0].Payload.Title)
	})

	t.Run("a failing audit store never alters the results", func(t *testing.T) {
		push := notifications.NewMemoryChannel(notifications.ChannelPush)
		d, err := notifications.NewDispatcher(
			[]notifications.ChannelDeliverer{push},
			notifications.WithAuditStorage(failingAudit{}),
		)
		require.NoError(t, err)

		results, err := d.Send(ctx, testPayload([]string{"u1"}, []notifications.Channel{notifications.ChannelPush}))
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.True(t, results[0].Success)
	})
}

func TestSendToStore(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves owner and admins with deduplication", func(t *testing.T) {
		directory := notifications.NewMemoryDirectory()
		directory.Put("store-1", notifications.StoreRecipients{
			OwnerID:  "owner-1",
			AdminIDs: []string{"admin-1", "owner-1", "admin-2", "admin-1"},
		})

		push := notifications.NewMemoryChannel(notifications.ChannelPush)
		d, err := notifications.NewDispatcher(
			[]notifications.ChannelDeliverer{push},
			notifications.WithStoreDirectory(directory),
		)
		require.NoError(t, err)

		results, err := d.SendToStore(ctx, "store-1", testPayload(
			[]string{"ignored-and-replaced"},
			[]notifications.Channel{notifications.ChannelPush},
		))
		require.NoError(t, err)
		require.Len(t, results, 3)

		var ids []string
		for _, r := range results {
			ids = append(ids, r.RecipientID)
		}
		assert.ElementsMatch(t, []string{"owner-1", "admin-1", "admin-2"}, ids)
	})

	t.Run("unknown store fails before any delivery attempt", func(t *testing.T) {
		directory := notifications.NewMemoryDirectory()
		push := notifications.NewMemoryChannel(notifications.ChannelPush)
		d, err := notifications.NewDispatcher(
			[]notifications.ChannelDeliverer{push},
			notifications.WithStoreDirectory(directory),
		)
		require.NoError(t, err)

		results, err := d.SendToStore(ctx, "ghost", testPayload(nil, []notifications.Channel{notifications.ChannelPush}))
		assert.ErrorIs(t, err, notifications.ErrStoreNotFound)
		assert.Contains(t, err.Error(), "ghost")
		assert.Nil(t, results)
		assert.Empty(t, push.Deliveries())
	})

	t.Run("requires a configured directory", func(t *testing.T) {
		push := notifications.NewMemoryChannel(notifications.ChannelPush)
		d, err := notifications.NewDispatcher([]notifications.ChannelDeliverer{push})
		require.NoError(t, err)

		_, err = d.SendToStore(ctx, "store-1", testPayload(nil, []notifications.Channel{notifications.ChannelPush}))
		assert.ErrorIs(t, err, notifications.ErrNoStoreDirectory)
	})
}

func TestSendWithWorkerPool(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers every pair through a bounded pool", func(t *testing.T) {
		push := notifications.NewMemoryChannel(notifications.ChannelPush)
		email := notifications.NewMemoryChannel(notifications.ChannelEmail)
		d, err := notifications.NewDispatcher(
			[]notifications.ChannelDeliverer{push, email},
			notifications.WithWorkerPool(2),
		)
		require.NoError(t, err)
		defer d.Close()

		results, err := d.Send(ctx, testPayload(
			[]string{"u1", "u2", "u3", "u4"},
			[]notifications.Channel{notifications.ChannelPush, notifications.ChannelEmail},
		))
		require.NoError(t, err)
		require.Len(t, results, 8)
		for _, r := range results {
			assert.True(t, r.Success)
		}
	})
}
