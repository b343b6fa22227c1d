package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunFailsWithoutMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")

	err := run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGODB_URI")
}

func TestRunReturnsConnectError(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://127.0.0.1:1")
	t.Setenv("MONGODB_CONNECT_RETRIES", "1")
	t.Setenv("LOG_LEVEL", "error")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to MongoDB")
}
