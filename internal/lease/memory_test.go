package lease

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryLeaser(t *testing.T) {
	ctx := context.Background()

	t.Run("second obtain on held key fails", func(t *testing.T) {
		leaser := NewInMemory()

		held, err := leaser.Obtain(ctx, "tenant-a", time.Minute)
		require.NoError(t, err)

		_, err = leaser.Obtain(ctx, "tenant-a", time.Minute)
		assert.ErrorIs(t, err, ErrNotObtained)

		require.NoError(t, held.Release(ctx))
		_, err = leaser.Obtain(ctx, "tenant-a", time.Minute)
		assert.NoError(t, err)
	})

	t.Run("distinct keys do not contend", func(t *testing.T) {
		leaser := NewInMemory()

		_, err := leaser.Obtain(ctx, "tenant-a", time.Minute)
		require.NoError(t, err)
		_, err = leaser.Obtain(ctx, "tenant-b", time.Minute)
		assert.NoError(t, err)
	})

	t.Run("expired lease can be re-obtained", func(t *testing.T) {
		leaser := NewInMemory()

		_, err := leaser.Obtain(ctx, "tenant-a", time.Millisecond)
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)
		_, err = leaser.Obtain(ctx, "tenant-a", time.Minute)
		assert.NoError(t, err)
	})

	t.Run("release is idempotent", func(t *testing.T) {
		leaser := NewInMemory()

		held, err := leaser.Obtain(ctx, "tenant-a", time.Minute)
		require.NoError(t, err)

		require.NoError(t, held.Release(ctx))
		require.NoError(t, held.Release(ctx))
	})
}
