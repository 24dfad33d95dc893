package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"victorian-room/renderer"
	"victorian-room/scene"
)

func TestStatusLineJoins(t *testing.T) {
	var s StatusLine
	s.Add("a=%d", 1)
	s.Add("b")
	assert.Equal(t, "a=1 | b", s.String())
	s.Clear()
	assert.Empty(t, s.String())
}

func TestStatusTitle(t *testing.T) {
	fc := newTestContext()
	fc.Debug = scene.DebugNormals
	got := statusTitle("Victorian Room", 60, fc, renderer.Stats{Particles: 42})

	assert.Contains(t, got, "Victorian Room | FPS: 60 | (0.00, 1.70, 0.00)")
	assert.Contains(t, got, "light 3.00/1.00")
	assert.Contains(t, got, "smoke 42")
	assert.Contains(t, got, "["+scene.DebugNormals.String()+"]")
}
