// Package app provides shared session state and the application event bus.
package app

import (
	"image/color"
	"sync"

	"codraw/pkg/colorutil"
)

// DefaultPenWidth is the stroke thickness used until the user picks another.
const DefaultPenWidth = 3

// Session holds the settings shared between the editor and the UI: the
// active drawing tool, the selected generation model, and whether a
// generation request is in flight.
type Session struct {
	mu sync.RWMutex

	penColor   color.RGBA
	penWidth   int
	model      string
	generating bool

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventFrameChanged EventType = iota
	EventHistoryChanged
	EventStatusChanged
	EventToolChanged
	EventModelChanged
	EventGenerationStarted
	EventGenerationFinished
	EventGenerationFailed
	EventConfigReloaded
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewSession creates a session with default tool settings.
func NewSession() *Session {
	return &Session{
		penColor:  colorutil.Black,
		penWidth:  DefaultPenWidth,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// PenColor returns the active stroke color.
func (s *Session) PenColor() color.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.penColor
}

// SetPenColor changes the active stroke color and emits an event.
func (s *Session) SetPenColor(c color.RGBA) {
	s.mu.Lock()
	s.penColor = c
	s.mu.Unlock()
	s.Emit(EventToolChanged, c)
}

// PenWidth returns the active stroke thickness in canvas pixels.
func (s *Session) PenWidth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.penWidth
}

// SetPenWidth changes the active stroke thickness and emits an event.
func (s *Session) SetPenWidth(width int) {
	if width < 1 {
		width = 1
	}
	s.mu.Lock()
	s.penWidth = width
	s.mu.Unlock()
	s.Emit(EventToolChanged, width)
}

// Model returns the selected generation model.
func (s *Session) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

// SetModel changes the selected generation model and emits an event.
func (s *Session) SetModel(model string) {
	s.mu.Lock()
	changed := s.model != model
	s.model = model
	s.mu.Unlock()
	if changed {
		s.Emit(EventModelChanged, model)
	}
}

// Generating reports whether a generation request is in flight.
func (s *Session) Generating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generating
}

// SetGenerating flips the in-flight flag and emits the matching event.
func (s *Session) SetGenerating(generating bool) {
	s.mu.Lock()
	s.generating = generating
	s.mu.Unlock()
	if generating {
		s.Emit(EventGenerationStarted, nil)
	} else {
		s.Emit(EventGenerationFinished, nil)
	}
}
