package upsert

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinoosan/cinerator/internal/errs"
)

func TestApply(t *testing.T) {
	ctx := context.Background()
	update := func(context.Context) (string, error) { return "updated", nil }
	create := func(context.Context) (string, error) { return "created", nil }

	res, err := Apply(ctx, func(context.Context) error { return nil }, update, create)
	require.NoError(t, err)
	assert.Equal(t, Updated, res.Kind)
	assert.Equal(t, "updated", res.Value)

	res, err = Apply(ctx, func(context.Context) error { return errs.Missing("Genre", "x") }, update, create)
	require.NoError(t, err)
	assert.True(t, res.Created())
	assert.Equal(t, "created", res.Value)

	boom := errors.New("boom")
	_, err = Apply(ctx, func(context.Context) error { return boom }, update, create)
	assert.ErrorIs(t, err, boom)
}
