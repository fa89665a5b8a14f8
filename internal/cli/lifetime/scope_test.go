package lifetime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope_ApplyWhileAlive(t *testing.T) {
	s := New(context.Background())
	n := 0
	assert.True(t, s.Apply(func() { n++ }))
	assert.Equal(t, 1, n)
	assert.True(t, s.Alive())
}

func TestScope_DropsAfterClose(t *testing.T) {
	s := New(context.Background())
	s.Close()
	s.Close()

	n := 0
	assert.False(t, s.Apply(func() { n++ }))
	assert.Zero(t, n)
	assert.False(t, s.Alive())
	assert.ErrorIs(t, s.Context().Err(), context.Canceled)
}

func TestScope_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s := New(parent)
	cancel()
	assert.False(t, s.Apply(func() {}))
}
