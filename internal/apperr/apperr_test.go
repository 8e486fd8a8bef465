package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("take next: %w", Missing(CodeQueueEmpty, "no pending tickets"))

	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.True(t, Is(wrapped, CodeQueueEmpty))
	assert.False(t, Is(wrapped, CodeTicketNotFound))
	assert.Equal(t, Internal, KindOf(errors.New("boom")))
}

func TestTransitionCarriesStates(t *testing.T) {
	err := Transition("SERVING", "SKIPPED")

	assert.Equal(t, InvalidTransition, err.Kind)
	assert.Equal(t, "SERVING", err.From)
	assert.Equal(t, "SKIPPED", err.To)
	assert.Contains(t, err.Error(), "SERVING")
}

func TestRaceUnwraps(t *testing.T) {
	cause := errors.New("could not serialize access")
	err := Race(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "race_lost", err.Kind.String())
}
