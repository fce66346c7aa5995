package tracklist

import (
	"iter"

	"github.com/Robert-J-H/audacity"
)

// Iteration views over the sequence. All of them walk the main sequence only;
// the pending overlay is never visible through them.

// All yields every track in order.
func (l *TrackList) All() iter.Seq[*Track] {
	return func(yield func(*Track) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.track) {
				return
			}
		}
	}
}

// Leaders yields the first track of every channel group.
func (l *TrackList) Leaders() iter.Seq[*Track] {
	return l.filtered((*Track).IsLeader)
}

// SelectedTracks yields the tracks whose group is selected.
func (l *TrackList) SelectedTracks() iter.Seq[*Track] {
	return l.filtered((*Track).Selected)
}

// SelectedLeaders yields the leaders of selected groups.
func (l *TrackList) SelectedLeaders() iter.Seq[*Track] {
	return l.filtered(func(t *Track) bool { return t.Selected() && t.IsLeader() })
}

// ByKind yields the tracks of one kind.
func (l *TrackList) ByKind(k audacity.Kind) iter.Seq[*Track] {
	return l.filtered(func(t *Track) bool { return t.Kind() == k })
}

func (l *TrackList) filtered(pred func(*Track) bool) iter.Seq[*Track] {
	return func(yield func(*Track) bool) {
		for n := l.head; n != nil; n = n.next {
			if pred(n.track) && !yield(n.track) {
				return
			}
		}
	}
}

// Channels yields t's channel group: the maximal contiguous run, starting at
// t's leader, of tracks sharing t's group data. An ungrouped track is its own
// singleton group.
func (l *TrackList) Channels(t *Track) iter.Seq[*Track] {
	return func(yield func(*Track) bool) {
		leader := l.FindLeader(t)
		if leader == nil {
			return
		}
		if !yield(leader) {
			return
		}
		g := leader.group
		if g == nil {
			return
		}
		for n := leader.node.next; n != nil && n.track.group == g; n = n.next {
			if !yield(n.track) {
				return
			}
		}
	}
}

// SyncLockGroup yields the sync-lock group containing t; see
// FindSyncLockGroup.
func (l *TrackList) SyncLockGroup(t *Track) iter.Seq[*Track] {
	return func(yield func(*Track) bool) {
		first, last := l.FindSyncLockGroup(t)
		if first == nil {
			return
		}
		for n := first.node; n != nil; n = n.next {
			if !yield(n.track) || n.track == last {
				return
			}
		}
	}
}
