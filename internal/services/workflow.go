package services

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// The product pages run a two-phase lifecycle: metadata first, images
// second. The phase lives in an explicit state value per workflow; button
// labels are derived from the state, never the other way around.

type WorkflowMode int

const (
	ModeCreate WorkflowMode = iota
	ModeEdit
)

type WorkflowState int

const (
	// Create mode
	StateEditing WorkflowState = iota
	StateCreated
	// Edit mode
	StateViewingDetails
	StateEditingImages
	// Terminal for both modes
	StateDone
)

var (
	ErrBadTransition = errors.New("invalid workflow transition")
	ErrNoProductID   = errors.New("product ID not known yet")
)

// ProductWorkflow tracks one admin's progress through product creation or
// editing, together with the images pending upload. Each instance owns its
// pending set; nothing here is process-global. One workflow is shared by
// every concurrent request for its session, so state and productID are only
// touched under the lock. mode is fixed at construction.
type ProductWorkflow struct {
	mu        sync.Mutex
	mode      WorkflowMode
	state     WorkflowState
	productID int64
	Pending   *PendingImageSet
	logger    zerolog.Logger
}

func NewCreateWorkflow(logger zerolog.Logger) *ProductWorkflow {
	return &ProductWorkflow{
		mode:    ModeCreate,
		state:   StateEditing,
		Pending: NewPendingImageSet(logger),
		logger:  logger,
	}
}

func NewEditWorkflow(productID int64, logger zerolog.Logger) *ProductWorkflow {
	return &ProductWorkflow{
		mode:      ModeEdit,
		state:     StateViewingDetails,
		productID: productID,
		Pending:   NewPendingImageSet(logger),
		logger:    logger,
	}
}

func (w *ProductWorkflow) Mode() WorkflowMode { return w.mode }

func (w *ProductWorkflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// ProductID returns the server-assigned identifier once it is known.
func (w *ProductWorkflow) ProductID() (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.productID == 0 {
		return 0, ErrNoProductID
	}
	return w.productID, nil
}

// MarkCreated records a successful metadata POST and moves the create flow
// into the image-upload phase.
func (w *ProductWorkflow) MarkCreated(productID int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.mode != ModeCreate || w.state != StateEditing {
		return ErrBadTransition
	}
	w.productID = productID
	w.state = StateCreated
	w.logger.Info().Int64("product_id", productID).Msg("Product created, images pending")
	return nil
}

// MarkDetailsSaved records a successful metadata PUT in edit mode.
func (w *ProductWorkflow) MarkDetailsSaved() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.mode != ModeEdit || w.state != StateViewingDetails {
		return ErrBadTransition
	}
	w.state = StateEditingImages
	return nil
}

// SkipToImages short-circuits edit mode straight to image editing without
// saving details.
func (w *ProductWorkflow) SkipToImages() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.mode != ModeEdit || w.state != StateViewingDetails {
		return ErrBadTransition
	}
	w.state = StateEditingImages
	return nil
}

// MarkImagesUploaded completes the workflow after a successful upload.
func (w *ProductWorkflow) MarkImagesUploaded() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.mode == ModeCreate && w.state == StateCreated:
	case w.mode == ModeEdit && w.state == StateEditingImages:
	default:
		return ErrBadTransition
	}
	w.state = StateDone
	return nil
}

// ImagesPhase reports whether the workflow is in its image-upload phase.
func (w *ProductWorkflow) ImagesPhase() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state == StateCreated || w.state == StateEditingImages
}

// PrimaryLabel is the main action button's text, derived from state.
func (w *ProductWorkflow) PrimaryLabel() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case w.mode == ModeCreate && w.state == StateEditing:
		return "Create Product"
	case w.mode == ModeCreate:
		return "Upload Images"
	case w.state == StateViewingDetails:
		return "Edit Details"
	default:
		return "Edit Images"
	}
}

// SecondaryLabel is the companion button's text: reset while creating, skip
// or back-to-list while editing.
func (w *ProductWorkflow) SecondaryLabel() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.mode == ModeCreate {
		return "Reset"
	}
	if w.state == StateViewingDetails {
		return "Skip Details"
	}
	return "Back to List"
}
