// Package engine is the application core of twig: focus routing between
// screens and popups, the event protocol screens and background operations
// use to talk to the event loop, list windowing, and the off-loop network
// operation driver.
//
// All Screen state is owned by the event loop goroutine. Background
// operations only publish events on a Bus; the input pause flag is the one
// value shared across goroutines.
package engine
