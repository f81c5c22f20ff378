package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClasses(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		code  string
	}{
		{"transport", NewTransportError("list datasets", errors.New("connection refused")), IsTransport, "TRANSPORT_ERROR"},
		{"protocol", NewProtocolError("list datasets", "db down"), IsProtocol, "PROTOCOL_ERROR"},
		{"invalid input", NewInvalidInputError("no file selected"), IsInvalidInput, "INVALID_INPUT"},
		{"unauthorized", NewUnauthorizedError("not logged in"), IsUnauthorized, "UNAUTHORIZED"},
		{"not found", NewNotFoundError("Game", "g-1"), IsNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))

			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.True(t, tt.check(wrapped), "class must survive wrapping")

			var de *DomainError
			assert.True(t, errors.As(wrapped, &de))
			assert.Equal(t, tt.code, de.Code)
		})
	}
}

func TestProtocolErrorDefaultMessage(t *testing.T) {
	err := NewProtocolError("fetch analytics", "")
	assert.Equal(t, "fetch analytics: server reported failure", UserMessage(err))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "list datasets: db down", UserMessage(NewProtocolError("list datasets", "db down")))
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
	assert.False(t, IsProtocol(errors.New("plain")))
}
