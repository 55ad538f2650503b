// Package screen implements every browsable view and popup of the dashboard.
//
// Each type satisfies engine.Screen. Screens read the repository through a
// git.Backend, start network work through engine.Operations and talk back
// to the event loop only by emitting engine events.
package screen
