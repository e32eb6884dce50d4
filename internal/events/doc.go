// Package events provides types and interfaces for observing study sessions.
//
// A session store emits a SessionEvent after every transition it applies.
// Components that care about session changes (request logging, catalog
// statistics, tests) register an EventHandler without the store knowing about
// them.
//
// The primary components are:
// - SessionEvent: Describes one applied transition
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
