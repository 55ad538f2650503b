package engine

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/twig/internal/debug"
)

// Router owns the screens and decides which one receives input. Only one
// screen is focused at a time; when that screen is a popup it is the only one
// that sees keys.
type Router struct {
	screens map[ScreenID]Screen
	order   []ScreenID

	current ScreenID

	// last is the most recently focused non-popup screen, the target of Return.
	last ScreenID
}

// NewRouter returns a router with nothing focused.
func NewRouter() *Router {
	return &Router{screens: make(map[ScreenID]Screen)}
}

// Register adds s under id. Registering an id twice replaces the screen.
func (r *Router) Register(id ScreenID, s Screen) {
	if _, ok := r.screens[id]; !ok {
		r.order = append(r.order, id)
	}
	r.screens[id] = s
}

// Screen returns the screen registered under id.
func (r *Router) Screen(id ScreenID) (Screen, bool) {
	s, ok := r.screens[id]
	return s, ok
}

// Current returns the focused screen id.
func (r *Router) Current() ScreenID {
	return r.current
}

// Last returns the most recently focused non-popup screen.
func (r *Router) Last() ScreenID {
	return r.last
}

// Focus moves focus to t: the current screen loses focus, t's payload is
// injected into its screen, then that screen gains focus. Focusing the
// current screen runs the same sequence.
func (r *Router) Focus(t Target) {
	id := t.Screen()
	if _, ok := t.(Return); ok {
		id = r.last
	}

	if prev, ok := r.screens[r.current]; ok {
		prev.Focus(false)
	}

	next, ok := r.screens[id]
	if !ok {
		debug.Event("router", "focus %s: not registered", id)
		r.current = None
		return
	}
	t.inject(next)
	next.Focus(true)

	debug.Event("router", "focus %s -> %s", r.current, id)
	r.current = id
	if !id.IsPopup() {
		r.last = id
	}
}

// IsModalActive reports whether a popup is focused.
func (r *Router) IsModalActive() bool {
	return r.current.IsPopup()
}

// Capturing reports whether the focused screen wants every key.
func (r *Router) Capturing() bool {
	if c, ok := r.screens[r.current].(InputCapturer); ok {
		return c.Capturing()
	}
	return false
}

// DispatchInput delivers key to the focused screen only.
func (r *Router) DispatchInput(key tea.KeyMsg) error {
	s, ok := r.screens[r.current]
	if !ok {
		return nil
	}
	return s.HandleInput(key)
}

// DispatchUpdate refreshes every non-popup screen in registration order and
// returns the first error.
func (r *Router) DispatchUpdate() error {
	var first error
	for _, id := range r.order {
		if id.IsPopup() {
			continue
		}
		if err := r.screens[id].Update(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// UpdateScreens refreshes the given screens immediately.
func (r *Router) UpdateScreens(ids ...ScreenID) error {
	var first error
	for _, id := range ids {
		s, ok := r.screens[id]
		if !ok {
			continue
		}
		if err := s.Update(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
