// Package app provides the Bubble Tea model that drives twig.
//
// Model is the event loop. It merges terminal input and periodic ticks
// (delivered by Bubble Tea) with engine events posted by screens and by
// background network operations, routes each message through an
// engine.Router, refreshes the browsable screens once per message, and
// renders the frame with internal/ui.
package app
