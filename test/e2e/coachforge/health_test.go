package coachforge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachforge/coachforge/pkg/coachsdk"
)

func TestHealthProbes(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := context.Background()
	client := coachsdk.NewClient(baseURL)

	live, err := client.Livez(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", live.Status)
	assert.NotEmpty(t, live.Version)

	ready, err := client.Readyz(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", ready.Status)
	assert.Equal(t, "ok", ready.Database)
}
