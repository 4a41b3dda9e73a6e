package services

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlens/scoutlens/pkg/utils"
)

func TestNotesAddListDelete(t *testing.T) {
	svc := NewNoteService(t.TempDir(), logrus.New())
	ctx := context.Background()

	first, err := svc.Add(ctx, "p1", "Great first touch")
	require.NoError(t, err)
	second, err := svc.Add(ctx, "", "General observation")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	all := svc.List(ctx, "")
	require.Len(t, all, 2)
	// newest first
	assert.Equal(t, second.ID, all[0].ID)

	forPlayer := svc.List(ctx, "p1")
	require.Len(t, forPlayer, 1)
	assert.Equal(t, first.ID, forPlayer[0].ID)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.Len(t, svc.List(ctx, ""), 1)
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), utils.ErrNotFound)
}

func TestNotesRejectEmptyText(t *testing.T) {
	svc := NewNoteService(t.TempDir(), logrus.New())

	_, err := svc.Add(context.Background(), "p1", "   ")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}
