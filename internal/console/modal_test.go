package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModal(t *testing.T) {
	var m Modal[string]
	assert.Equal(t, ModalClosed, m.State())
	_, ok := m.Target()
	assert.False(t, ok)

	m.OpenCreate()
	assert.Equal(t, ModalCreating, m.State())
	_, ok = m.Target()
	assert.False(t, ok)

	m.OpenEdit("g-1")
	target, ok := m.Target()
	assert.True(t, ok)
	assert.Equal(t, "g-1", target)
	assert.Equal(t, "editing", m.State().String())

	m.Close()
	assert.False(t, m.IsOpen())
	_, ok = m.Target()
	assert.False(t, ok)
}
