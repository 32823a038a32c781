package cachesock

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientServerRoundTrip(t *testing.T) {
	addr := filepath.Join(t.TempDir(), "cache.sock")
	var got []string
	l, err := Listen(addr, func(ctx context.Context, accessKey string) error {
		got = append(got, accessKey)
		return nil
	})
	require.NoError(t, err)
	defer l.Close()

	c := NewClient(addr)
	defer c.Close()

	require.NoError(t, c.Invalidate(context.Background(), "AKIA1"))
	require.NoError(t, c.Invalidate(context.Background(), "AKIA2"))
	assert.Equal(t, []string{"AKIA1", "AKIA2"}, got)
}

func TestClientServerError(t *testing.T) {
	addr := filepath.Join(t.TempDir(), "cache.sock")
	l, err := Listen(addr, func(ctx context.Context, accessKey string) error {
		return errors.New("cache unavailable")
	})
	require.NoError(t, err)
	defer l.Close()

	c := NewClient(addr)
	defer c.Close()

	err = c.Invalidate(context.Background(), "AKIA1")
	require.Error(t, err)
	assert.Equal(t, "cache unavailable", err.Error())
}
