// Package tui provides the terminal remote for a running server.
package tui

type state int

const (
	playerState state = iota
	libraryState
	urlsState
	draftState
	addURLState
	errorState
)

// tabs is the order tab cycles through.
var tabs = []state{playerState, libraryState, urlsState, draftState}

func (s state) String() string {
	switch s {
	case playerState:
		return "Now Playing"
	case libraryState:
		return "Library"
	case urlsState:
		return "Saved URLs"
	case draftState:
		return "Playlist Draft"
	case addURLState:
		return "Add URL"
	case errorState:
		return "Error"
	default:
		return "Unknown"
	}
}
