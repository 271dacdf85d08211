package nats

import (
	"testing"

	"tv-keuzehulp-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "keuzehulp.session.reset", Subject(events.TypeSessionReset))
	assert.Equal(t, "keuzehulp.>", SubjectPrefix+">")
}
