// Package ui draws the twig dashboard.
//
// Screens render their own content; the Renderer places that content in
// titled panes according to a Layout and overlays the focused popup.
// Rendering is pure and holds no repository state.
package ui
