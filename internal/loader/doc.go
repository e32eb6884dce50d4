// Package loader fetches flashcard-set documents, validates them, and drives
// a session through the load transitions.
//
// A Source retrieves raw document bytes (from a directory or over HTTP).
// ParseDocument enforces the document contract. Loader combines the two and
// reports the outcome to the session: on success the cards, metadata and
// catalog descriptor are applied; on failure only the session's error and
// loading fields change, so a previously loaded deck stays in place.
package loader
