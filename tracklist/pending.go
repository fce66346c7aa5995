package tracklist

// The pending-track overlay implements non-destructive preview edits: staged
// duplicates shadow live tracks by id, and provisional tracks sit in the main
// sequence under the unassigned-id sentinel, until the whole overlay is
// committed or discarded atomically.

// Updater copies, from the live original into its staged duplicate, whichever
// fields the registering edit is responsible for. Geometry is not its
// business; the list force-copies that afterwards.
type Updater func(pending, src *Track) error

// RegisterPendingChangedTrack stages a detached duplicate of src, keyed by
// src's id, to be refreshed through updater until the overlay is applied or
// discarded. The duplicate is not inserted into the main sequence. Returns
// the duplicate.
func (l *TrackList) RegisterPendingChangedTrack(updater Updater, src *Track) *Track {
	if src == nil {
		return nil
	}
	d := src.Duplicate()

	l.updaters = append(l.updaters, updater)

	// Unlike Add, the shallow-shared group data must stay shared and
	// un-cloned, so that ApplyPendingTracks can Replace the original without
	// changing group membership.
	l.pendingUpdates = append(l.pendingUpdates, d)
	d.setOwner(l, nil)

	return d
}

// RegisterPendingNewTrack inserts t into the main sequence as a provisional
// track: it takes part in ordering and geometry, but carries the unassigned
// id until the overlay is applied.
func (l *TrackList) RegisterPendingNewTrack(t *Track, asLeader bool) {
	l.Add(t, asLeader)
	t.id = UnassignedID
}

// UpdatePendingTracks refreshes every staged duplicate whose original is
// still live: the updater copies its fields, then vertical offset, height and
// minimized state are force-copied so previews always track the committed
// geometry. The first updater failure is reported after the whole sweep.
func (l *TrackList) UpdatePendingTracks() error {
	var firstErr error
	for i, pending := range l.pendingUpdates {
		src := l.FindByID(pending.id)
		if src == nil {
			continue
		}
		if u := l.updaters[i]; u != nil {
			if err := u(pending, src); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		pending.doSetY(src.y)
		pending.doSetHeight(src.height)
		pending.doSetMinimized(src.minimized)
	}
	return firstErr
}

// ClearPendingTracks discards the overlay without committing it, sweeps any
// provisional tracks out of the main sequence and returns them to the caller.
// Never fails.
func (l *TrackList) ClearPendingTracks() []*Track {
	var removed []*Track
	l.dropPending(&removed)
	return removed
}

func (l *TrackList) dropPending(removed *[]*Track) {
	for _, p := range l.pendingUpdates {
		p.setOwner(nil, nil)
	}
	l.pendingUpdates = nil
	l.updaters = nil

	if removed != nil {
		*removed = (*removed)[:0]
	}

	for n := l.head; n != nil; {
		next := n.next
		if n.track.id == UnassignedID {
			if removed != nil {
				*removed = append(*removed, n.track)
			}
			n.track.setOwner(nil, nil)
			l.unlink(n)
			n.track, n.list = nil, nil
		}
		n = next
	}

	if l.head != nil {
		l.RecalcPositions(l.head)
	}
}

// ApplyPendingTracks commits the overlay: every staged duplicate replaces its
// live original, or is re-added as a new track when the original has been
// deleted by an intervening action, so the accumulated edit is not lost; and
// every provisional track is reinserted at its recorded index under a real
// id. The overlay is cleared whether or not an updater fails; on failure the
// error propagates with no change applied and positions fully recomputed.
// Reports whether anything changed.
func (l *TrackList) ApplyPendingTracks() (bool, error) {
	result := false

	var additions []*Track
	var updates []*Track
	err := func() error {
		// always clear, even when an updater fails
		defer l.dropPending(&additions)
		if err := l.UpdatePendingTracks(); err != nil {
			return err
		}
		updates, l.pendingUpdates = l.pendingUpdates, nil
		return nil
	}()
	if err != nil {
		return false, err
	}

	// The remaining steps cannot fail, so a failure above leaves the list
	// untouched apart from the discarded overlay.

	var reinstated []*Track
	for _, pending := range updates {
		if src := l.FindByID(pending.id); src != nil {
			if old := l.Replace(src, pending); old != nil {
				old.detachGroup()
			}
			result = true
		} else {
			reinstated = append(reinstated, pending)
		}
	}
	for _, pending := range reinstated {
		l.Add(pending, pending.IsLeader())
		result = true
	}

	// Put the provisional additions back, preserving their recorded
	// positions.
	var first *Node
	for _, pending := range additions {
		n := l.insertAt(pending.index, pending)
		pending.setOwner(l, n)
		l.assignID(pending)
		if first == nil {
			first = n
		}
		result = true
	}
	if first != nil {
		l.RecalcPositions(first)
	}

	return result, nil
}

// insertAt links t before the current index-th node, or at the tail when the
// index is past the end.
func (l *TrackList) insertAt(index int, t *Track) *Node {
	anchor := l.head
	for i := 0; i < index && anchor != nil; i++ {
		anchor = anchor.next
	}
	n := &Node{list: l, track: t}
	l.insertNodeBefore(anchor, n)
	return n
}

// HasPendingTracks reports whether the overlay holds staged duplicates or the
// main sequence still carries a provisional track.
func (l *TrackList) HasPendingTracks() bool {
	if len(l.pendingUpdates) > 0 {
		return true
	}
	for n := l.head; n != nil; n = n.next {
		if n.track.id == UnassignedID {
			return true
		}
	}
	return false
}
