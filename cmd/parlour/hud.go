package main

import (
	"fmt"
	"strings"

	"victorian-room/renderer"
	"victorian-room/scene"
)

// StatusLine collects the fields shown in the window title.
type StatusLine struct {
	parts []string
}

func (s *StatusLine) Add(format string, args ...interface{}) {
	s.parts = append(s.parts, fmt.Sprintf(format, args...))
}

func (s *StatusLine) Clear() {
	s.parts = s.parts[:0]
}

func (s *StatusLine) String() string {
	return strings.Join(s.parts, " | ")
}

// statusTitle formats the per-second window title.
func statusTitle(title string, fps int, fc *scene.FrameContext, st renderer.Stats) string {
	var s StatusLine
	s.Add("%s", title)
	s.Add("FPS: %d", fps)
	if fc.Camera != nil {
		p := fc.Camera.Position
		s.Add("(%.2f, %.2f, %.2f)", p.X(), p.Y(), p.Z())
	}
	s.Add("light %.2f/%.2f", fc.GlobalBrightness, fc.LocalBrightness)
	s.Add("smoke %d", st.Particles)
	if fc.Debug != scene.DebugNone {
		s.Add("[%s]", fc.Debug)
	}
	return s.String()
}
