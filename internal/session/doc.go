// Package session implements the study-session state model.
//
// A session holds the active deck of flashcards, the position within it,
// whether the current card's answer is showing, and the status of the most
// recent set load. State only changes through a closed vocabulary of
// transitions (see Action), each of which is a pure function from the current
// State to the next one (see Reduce). Store owns one State, applies
// transitions atomically, and hands out copies to readers. Registry keeps one
// Store per connected client.
package session
