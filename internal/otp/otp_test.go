package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService(nil)
	require.NoError(t, err)
	return s
}

func TestGenerateThenValidate(t *testing.T) {
	s := newTestService(t)

	code, err := s.Generate()
	require.NoError(t, err)
	require.Len(t, code, 6)

	assert.True(t, s.Validate(code))
}

func TestValidateWithinSkewWindow(t *testing.T) {
	s := newTestService(t)

	// Code from the previous step is still accepted.
	base := time.Now()
	s.now = func() time.Time { return base.Add(-period * time.Second) }
	code, err := s.Generate()
	require.NoError(t, err)

	s.now = func() time.Time { return base }
	assert.True(t, s.Validate(code))
}

func TestValidateRejectsStaleCode(t *testing.T) {
	s := newTestService(t)

	base := time.Now()
	s.now = func() time.Time { return base.Add(-3 * period * time.Second) }
	code, err := s.Generate()
	require.NoError(t, err)

	s.now = func() time.Time { return base }
	assert.False(t, s.Validate(code))
}

func TestValidateRejectsGarbage(t *testing.T) {
	s := newTestService(t)
	assert.False(t, s.Validate("000000"))
	assert.False(t, s.Validate("not-a-code"))
}

func TestRecipientBinding(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s, err := NewService(rdb)
	require.NoError(t, err)

	ctx := context.Background()
	code, err := s.Generate()
	require.NoError(t, err)
	require.NoError(t, s.Bind(ctx, "alice@example.com", code))

	ok, err := s.ValidateFor(ctx, "alice@example.com", code)
	require.NoError(t, err)
	assert.True(t, ok)

	// The same code is not accepted for a different recipient.
	ok, err = s.ValidateFor(ctx, "bob@example.com", code)
	require.NoError(t, err)
	assert.False(t, ok)
}
