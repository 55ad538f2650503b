package app

import "github.com/henri123lemoine/twig/internal/engine"

// busMsg carries one event posted by a background operation.
type busMsg struct {
	event engine.Event
}

// externalDoneMsg is sent when an external program hands the terminal back.
type externalDoneMsg struct {
	err    error
	onExit func(error) engine.Event
}
