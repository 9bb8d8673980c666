package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func read(t *testing.T, s *CartStore, sessionID string) *entity.Cart {
	t.Helper()
	var out *entity.Cart
	require.NoError(t, s.Update(context.Background(), sessionID, func(c *entity.Cart) error {
		out = c.Clone()
		return nil
	}))
	return out
}

// Doble clic: muchas sumas concurrentes en la misma sesión no deben perder incrementos.
func TestCartStore_UpdateConcurrenteNoPierdeIncrementos(t *testing.T) {
	s := NewCartStore(0)
	const n = 200

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(context.Background(), "sess", func(c *entity.Cart) error {
				c.AddOne("r1")
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, n, read(t, s, "sess").Quantity("r1"))
}

func TestCartStore_ErrorNoGuardaCambios(t *testing.T) {
	s := NewCartStore(0)
	ctx := context.Background()
	require.NoError(t, s.Update(ctx, "sess", func(c *entity.Cart) error {
		c.AddOne("r1")
		return nil
	}))

	boom := errors.New("boom")
	err := s.Update(ctx, "sess", func(c *entity.Cart) error {
		c.AddOne("r1")
		c.AddOne("r2")
		return boom
	})

	assert.ErrorIs(t, err, boom)
	c := read(t, s, "sess")
	assert.Equal(t, []entity.CartEntry{{ItemID: "r1", Quantity: 1}}, c.Entries)
}

func TestCartStore_SesionesAisladas(t *testing.T) {
	s := NewCartStore(0)
	ctx := context.Background()
	require.NoError(t, s.Update(ctx, "a", func(c *entity.Cart) error {
		c.AddOne("r1")
		return nil
	}))

	assert.True(t, read(t, s, "b").IsEmpty())
	assert.Equal(t, 1, read(t, s, "a").Quantity("r1"))
}

func TestCartStore_ExpiraPorInactividad(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s := NewCartStore(30 * time.Minute)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, "sess", func(c *entity.Cart) error {
		c.AddOne("r1")
		return nil
	}))

	now = now.Add(20 * time.Minute)
	assert.Equal(t, 1, read(t, s, "sess").Quantity("r1"), "dentro del ttl se conserva")

	now = now.Add(31 * time.Minute)
	assert.True(t, read(t, s, "sess").IsEmpty(), "vencido se reinicia al acceder")
}

func TestCartStore_PurgeExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s := NewCartStore(time.Hour)
	s.now = func() time.Time { return now }
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		require.NoError(t, s.Update(ctx, id, func(c *entity.Cart) error { return nil }))
	}
	now = now.Add(30 * time.Minute)
	require.NoError(t, s.Update(ctx, "b", func(c *entity.Cart) error { return nil }))

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, s.PurgeExpired())
	assert.Equal(t, 1, s.Len())
}

func TestCartStore_Delete(t *testing.T) {
	s := NewCartStore(0)
	ctx := context.Background()
	require.NoError(t, s.Update(ctx, "sess", func(c *entity.Cart) error {
		c.AddOne("r1")
		return nil
	}))

	require.NoError(t, s.Delete(ctx, "sess"))
	assert.Equal(t, 0, s.Len())
	assert.True(t, read(t, s, "sess").IsEmpty())
}
