package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnconfiguredSenderFailsFast(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)

	assert.False(t, s.Configured())

	err = s.Send(context.Background(), "alice@example.com", "subject", "body")
	assert.Error(t, err)
}

func TestConfiguredSender(t *testing.T) {
	s, err := New(Config{
		Host:    "smtp.example.com",
		Port:    587,
		From:    "noreply@example.com",
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.True(t, s.Configured())
}

func TestSendRejectsInvalidRecipient(t *testing.T) {
	s, err := New(Config{
		Host: "smtp.example.com",
		Port: 587,
		From: "noreply@example.com",
	})
	require.NoError(t, err)

	err = s.Send(context.Background(), "not an address", "subject", "body")
	assert.Error(t, err)
}
