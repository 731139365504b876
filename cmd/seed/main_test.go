package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/votiy-api/internal/infrastructure/memory"
	"github.com/oksasatya/votiy-api/pkg/helpers"
)

func TestSeed_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	u1, p1, err := seed(ctx, s.Users(), s.Polls(), helpers.NopLogger())
	require.NoError(t, err)
	require.Len(t, p1.Options, 3)
	assert.True(t, p1.IsPublic)

	u2, p2, err := seed(ctx, s.Users(), s.Polls(), helpers.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, u1.ID, u2.ID)
	assert.Equal(t, p1.ID, p2.ID)

	users, err := s.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.True(t, helpers.CompareHashAndPassword(users[0].Password, demoPassword))
}
