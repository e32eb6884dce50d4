// Package catalog reads and maintains the list of available flashcard sets
// (sets-metadata.json).
//
// Service serves the catalog to the session layer through any loader.Source.
// Manager edits a catalog stored in a local data directory, and Watcher keeps
// a Service's cached copy in step with that directory.
package catalog
