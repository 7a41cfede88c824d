package securestore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemorySetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "alpha", "one"))

	value, err := m.Get(ctx, "alpha")
	require.NoError(t, err)
	require.Equal(t, "one", value)

	require.NoError(t, m.Delete(ctx, "alpha"))
	require.NoError(t, m.Delete(ctx, "alpha"))

	_, err = m.Get(ctx, "alpha")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryInjectedErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	m := NewMemory()
	m.GetErr = boom
	m.SetErr = boom
	m.DeleteErr = boom
	m.KeysErr = boom

	_, err := m.Get(ctx, "alpha")
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, m.Set(ctx, "alpha", "one"), boom)
	require.ErrorIs(t, m.Delete(ctx, "alpha"), boom)
	_, err = m.Keys(ctx)
	require.ErrorIs(t, err, boom)
}

func TestMemoryKeys(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "alpha", "one"))
	require.NoError(t, m.Set(ctx, "beta", "two"))

	keys, err := m.Keys(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"alpha", "beta"}, keys)
}
