package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eonite/portal-backend/internal/discounts"
	"github.com/eonite/portal-backend/pkg/redis"
)

type memoryKV struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func (m *memoryKV) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redis.ErrNil
	}
	return v, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	}
	m.ttls[key] = ttl
	return nil
}

func (m *memoryKV) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *memoryKV) CartKey(clientID string) string {
	return "portal:cart:" + clientID
}

func TestRedisSessionStoreRoundTrip(t *testing.T) {
	kv := &memoryKV{values: map[string]string{}, ttls: map[string]time.Duration{}}
	store, err := NewRedisSessionStore(kv, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()
	clientID := uuid.New()

	empty, err := store.Load(ctx, clientID)
	require.NoError(t, err)
	assert.True(t, empty.Ledger.IsEmpty())

	session := &Session{ClientID: clientID}
	require.NoError(t, session.Ledger.Add(newLine(uuid.New(), 10, 1, "0.1250")))
	session.Discount = &discounts.Applied{Code: "SAVE10", Percent: dec("10"), Amount: dec("0.13")}
	require.NoError(t, store.Save(ctx, session))
	assert.Equal(t, time.Hour, kv.ttls["portal:cart:"+clientID.String()])

	loaded, err := store.Load(ctx, clientID)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Ledger.Len())
	assert.True(t, dec("0.125").Equal(loaded.Ledger.Lines[0].UnitPrice))
	require.NotNil(t, loaded.Discount)
	assert.Equal(t, "SAVE10", loaded.Discount.Code)

	require.NoError(t, store.Delete(ctx, clientID))
	_, ok := kv.values["portal:cart:"+clientID.String()]
	assert.False(t, ok)
}
