package services

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWorkflowTransitions(t *testing.T) {
	flow := NewCreateWorkflow(zerolog.Nop())

	assert.Equal(t, StateEditing, flow.State())
	assert.Equal(t, "Create Product", flow.PrimaryLabel())
	assert.False(t, flow.ImagesPhase())

	_, err := flow.ProductID()
	assert.ErrorIs(t, err, ErrNoProductID)

	require.NoError(t, flow.MarkCreated(42))
	assert.Equal(t, StateCreated, flow.State())
	assert.Equal(t, "Upload Images", flow.PrimaryLabel())
	assert.True(t, flow.ImagesPhase())

	id, err := flow.ProductID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	require.NoError(t, flow.MarkImagesUploaded())
	assert.Equal(t, StateDone, flow.State())
}

func TestCreateWorkflowBadTransitions(t *testing.T) {
	flow := NewCreateWorkflow(zerolog.Nop())

	assert.ErrorIs(t, flow.MarkImagesUploaded(), ErrBadTransition)
	assert.ErrorIs(t, flow.MarkDetailsSaved(), ErrBadTransition)
	assert.ErrorIs(t, flow.SkipToImages(), ErrBadTransition)

	require.NoError(t, flow.MarkCreated(7))
	assert.ErrorIs(t, flow.MarkCreated(8), ErrBadTransition)
}

func TestCreateWorkflowConcurrentTransitions(t *testing.T) {
	flow := NewCreateWorkflow(zerolog.Nop())

	// Two simultaneous create submissions: exactly one transition wins.
	var wg sync.WaitGroup
	var succeeded atomic.Int32
	for i := 0; i < 2; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			if flow.MarkCreated(int64(100+i)) == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, StateCreated, flow.State())
}

func TestEditWorkflowTransitions(t *testing.T) {
	flow := NewEditWorkflow(9, zerolog.Nop())

	assert.Equal(t, StateViewingDetails, flow.State())
	assert.Equal(t, "Edit Details", flow.PrimaryLabel())
	assert.Equal(t, "Skip Details", flow.SecondaryLabel())

	id, err := flow.ProductID()
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	require.NoError(t, flow.MarkDetailsSaved())
	assert.Equal(t, StateEditingImages, flow.State())
	assert.Equal(t, "Edit Images", flow.PrimaryLabel())
	assert.Equal(t, "Back to List", flow.SecondaryLabel())

	require.NoError(t, flow.MarkImagesUploaded())
	assert.Equal(t, StateDone, flow.State())
}

func TestEditWorkflowSkipShortCircuit(t *testing.T) {
	flow := NewEditWorkflow(9, zerolog.Nop())

	require.NoError(t, flow.SkipToImages())
	assert.Equal(t, StateEditingImages, flow.State())
	assert.True(t, flow.ImagesPhase())

	// Skipping twice is not a valid move.
	assert.ErrorIs(t, flow.SkipToImages(), ErrBadTransition)
}
