package tracklist

import (
	log "github.com/sirupsen/logrus"
)

// EventKind enumerates the notifications a TrackList emits.
type EventKind int

const (
	EventAddition EventKind = iota
	EventDeletion
	EventPermutation
	EventResizing
	EventTrackData
	EventGroupData
	EventGroupSelection
)

func (k EventKind) String() string {
	switch k {
	case EventAddition:
		return "addition"
	case EventDeletion:
		return "deletion"
	case EventPermutation:
		return "permutation"
	case EventResizing:
		return "resizing"
	case EventTrackData:
		return "track-data"
	case EventGroupData:
		return "group-data"
	case EventGroupSelection:
		return "group-selection"
	}
	return "unknown"
}

// Event carries the minimal context a listener needs to re-query current
// state: the affected node or group plus an opaque change code. Listeners
// must not treat the payload as a snapshot.
type Event struct {
	Kind  EventKind
	Node  *Node // Addition and Resizing
	Track *Track
	Group Group // GroupData and GroupSelection
	Code  int
}

const eventQueueSize = 1024

// Events returns the queue of pending notifications. Events are queued for
// asynchronous delivery rather than dispatched inline, so a listener reacting
// to one cannot re-enter and corrupt a mutation still on the call stack.
func (l *TrackList) Events() <-chan Event { return l.events }

func (l *TrackList) post(e Event) {
	if !trySend(l.events, e) {
		log.WithField("kind", e.Kind).Warn("track list event queue full, dropping event")
	}
}

func (l *TrackList) additionEvent(n *Node) {
	l.post(Event{Kind: EventAddition, Node: n, Track: n.track})
}

func (l *TrackList) deletionEvent() {
	l.post(Event{Kind: EventDeletion})
}

func (l *TrackList) permutationEvent() {
	l.post(Event{Kind: EventPermutation})
}

func (l *TrackList) resizingEvent(n *Node) {
	if n == nil {
		return
	}
	l.post(Event{Kind: EventResizing, Node: n, Track: n.track})
}

func (l *TrackList) dataEvent(t *Track, code int) {
	l.post(Event{Kind: EventTrackData, Track: t, Code: code})
}

func (l *TrackList) groupDataEvent(g Group, code int) {
	l.post(Event{Kind: EventGroupData, Group: g, Code: code})
}

func (l *TrackList) groupSelectionEvent(g Group) {
	l.post(Event{Kind: EventGroupSelection, Group: g})
}

// trySend posts v to c if there is room, never blocking. Reports whether the
// value was sent.
func trySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
