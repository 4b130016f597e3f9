package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t,
		`no handler for conversation state "INVALID"`,
		(&UnknownStateError{State: StateInvalid}).Error())

	assert.Equal(t,
		"auto-advance exceeded 5 chained transitions",
		(&AutoAdvanceLoopError{Limit: maxAutoAdvance}).Error())

	assert.Equal(t,
		`required session field "foundReplyIds" not set`,
		(&MissingSelectionError{Field: "foundReplyIds"}).Error())
}
