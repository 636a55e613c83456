package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkingSession_Require(t *testing.T) {
	session := &LinkingSession{State: LinkStatePending}

	assert.NoError(t, session.Require(LinkStatePending))
	assert.NoError(t, session.Require(LinkStateCompleted, LinkStatePending))
	assert.True(t, errors.Is(session.Require(LinkStateCompleted), ErrInvalidState))
}

func TestLinkState_Terminal(t *testing.T) {
	assert.True(t, LinkStateExpired.Terminal())
	assert.True(t, LinkStateFailed.Terminal())
	assert.False(t, LinkStatePending.Terminal())
	assert.False(t, LinkStateCompleted.Terminal())
	assert.False(t, LinkStateInitiated.Terminal())
}

func TestUpstreamError_Retryable(t *testing.T) {
	tests := []struct {
		kind      UpstreamErrorKind
		retryable bool
	}{
		{UpstreamNetwork, true},
		{UpstreamServerFault, true},
		{UpstreamClientRejected, false},
		{UpstreamMalformed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := &UpstreamError{Kind: tt.kind}
			assert.Equal(t, tt.retryable, err.Retryable())
		})
	}
}

func TestUpstreamError_As(t *testing.T) {
	var target *UpstreamError
	wrapped := &UpstreamError{Kind: UpstreamServerFault, Status: 503}

	assert.True(t, errors.As(error(wrapped), &target))
	assert.Equal(t, 503, target.Status)
}
