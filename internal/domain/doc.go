// Package domain contains the core study entities of the application:
// flashcards, the documents they are loaded from, and the catalog descriptors
// that identify loadable sets. Values here are immutable once constructed and
// carry no knowledge of how they are fetched or rendered.
package domain
