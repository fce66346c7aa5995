package tracklist

import (
	"github.com/Robert-J-H/audacity"
)

// TrackID identifies a track within its owning list. Ids are assigned by the
// list when a track joins it and stay stable until the track leaves the
// project.
type TrackID int64

// UnassignedID marks a provisional track: one staged in the list as part of
// an uncommitted edit, not yet addressable by id lookup.
const UnassignedID TrackID = -1

const (
	// DefaultHeight is the height of a freshly created track, in pixels.
	DefaultHeight = 150

	// MinimumHeight is the height a whole channel group collapses to when
	// minimized; the channels split it between themselves.
	MinimumHeight = 44
)

// Track is one node payload of a TrackList: identity, the geometry caches
// maintained by the list, the kind-specific data, and an optional reference
// to the metadata shared by its channel group.
//
// The index and vertical offset are caches, never independently
// authoritative; the owning list recomputes them after every structural
// mutation.
type Track struct {
	id TrackID

	index     int
	y         int
	height    int
	minimized bool

	offset float64

	data  audacity.TrackData
	group Group

	// non-owning back references, cleared when the track leaves the list
	list *TrackList
	node *Node
}

// NewTrack wraps a kind payload in a detached track. The track has no id and
// no geometry until it is added to a list.
func NewTrack(data audacity.TrackData) *Track {
	return &Track{id: UnassignedID, height: DefaultHeight, data: data}
}

func (t *Track) ID() TrackID              { return t.id }
func (t *Track) Kind() audacity.Kind      { return t.data.Kind() }
func (t *Track) Data() audacity.TrackData { return t.data }
func (t *Track) Index() int               { return t.index }

// Node returns the track's stable position handle in the owning list, or nil
// for a detached track.
func (t *Track) Node() *Node { return t.node }

// List returns the owning list, or nil for a detached track.
func (t *Track) List() *TrackList { return t.list }

func (t *Track) setOwner(l *TrackList, n *Node) {
	t.list = l
	t.node = n
}

// shadowedBy returns the live original that the id of t shadows, if t is a
// staged duplicate (or any other copy) distinct from the track holding its id
// in the main sequence.
func (t *Track) shadowedBy() *Track {
	l := t.list
	if l == nil || len(l.pendingUpdates) == 0 {
		return nil
	}
	if orig := l.FindByID(t.id); orig != nil && orig != t {
		return orig
	}
	return nil
}

func (t *Track) Y() int { return t.y }

// SetY writes the vertical offset cache. Invoked on a staged duplicate it
// delegates to the live original and relies on the pending update to copy the
// value back, so a preview in progress is never bypassed.
func (t *Track) SetY(y int) {
	if orig := t.shadowedBy(); orig != nil {
		orig.SetY(y)
		_ = t.list.UpdatePendingTracks()
		return
	}
	t.doSetY(y)
}

func (t *Track) doSetY(y int) { t.y = y }

// Height returns the displayed height: the track's share of the collapsed
// group height when minimized, the stored height otherwise.
func (t *Track) Height() int {
	if t.minimized {
		return t.minimizedHeight()
	}
	return t.height
}

// ActualHeight returns the stored height regardless of the minimized flag.
func (t *Track) ActualHeight() int { return t.height }

// SetHeight stores a new height and lets the owning list recompute positions
// from here on. On a staged duplicate the call delegates to the live
// original; the recompute copies the value back into the duplicate.
func (t *Track) SetHeight(h int) {
	if orig := t.shadowedBy(); orig != nil {
		orig.SetHeight(h)
		return
	}
	t.doSetHeight(h)
	if t.list != nil {
		t.list.RecalcPositions(t.node)
		t.list.resizingEvent(t.node)
	}
}

func (t *Track) doSetHeight(h int) { t.height = h }

func (t *Track) Minimized() bool { return t.minimized }

// SetMinimized behaves like SetHeight: delegation to a shadowed original,
// then recompute and a resizing notification.
func (t *Track) SetMinimized(minimized bool) {
	if orig := t.shadowedBy(); orig != nil {
		orig.SetMinimized(minimized)
		return
	}
	t.doSetMinimized(minimized)
	if t.list != nil {
		t.list.RecalcPositions(t.node)
		t.list.resizingEvent(t.node)
	}
}

func (t *Track) doSetMinimized(minimized bool) { t.minimized = minimized }

// minimizedHeight is this channel's share of MinimumHeight, split so that the
// shares of the whole group sum exactly to it.
func (t *Track) minimizedHeight() int {
	orig := t.SubstituteOriginalTrack()
	if orig.list == nil {
		return MinimumHeight
	}
	n, i := 0, 0
	for ch := range orig.list.Channels(orig) {
		if ch == orig {
			i = n
		}
		n++
	}
	if n == 0 {
		return MinimumHeight
	}
	return MinimumHeight*(i+1)/n - MinimumHeight*i/n
}

func (t *Track) Offset() float64 { return t.offset }

// SetOffset moves the whole track in time.
func (t *Track) SetOffset(o float64) { t.offset = o }

// StartTime and EndTime place the payload's extent on the project timeline.
func (t *Track) StartTime() float64 { return t.offset + t.data.StartTime() }
func (t *Track) EndTime() float64   { return t.offset + t.data.EndTime() }

// IsLeader reports whether t starts its channel group: it has no group data,
// no predecessor, or a predecessor with different group data.
func (t *Track) IsLeader() bool {
	if t.group == nil {
		return true
	}
	if t.node != nil {
		if prev := t.node.prev; prev != nil && prev.track.group == t.group {
			return false
		}
	}
	return true
}

// Read accessors for the shared group state. They tolerate a track whose
// group data has not been materialized yet and report the defaults.

func (t *Track) Name() string {
	if t.group == nil {
		return t.Kind().DefaultName()
	}
	return t.group.Name()
}

func (t *Track) Selected() bool {
	return t.group != nil && t.group.Selected()
}

func (t *Track) Mute() bool {
	g, ok := t.group.(*PlayableGroupData)
	return ok && g.Mute()
}

func (t *Track) Solo() bool {
	g, ok := t.group.(*PlayableGroupData)
	return ok && g.Solo()
}

// GroupData returns the shared metadata of the track's channel group,
// materializing a singleton group on first access.
func (t *Track) GroupData() Group {
	if t.group == nil {
		g := newGroupFor(t)
		g.base().list = t.list
		t.attachGroup(g)
	}
	return t.group
}

// attachGroup points the track at g, keeping the owner counts that drive
// copy-on-write accurate.
func (t *Track) attachGroup(g Group) {
	if t.group == g {
		return
	}
	if t.group != nil {
		t.group.base().owners--
	}
	t.group = g
	if g != nil {
		g.base().owners++
	}
}

func (t *Track) detachGroup() {
	if t.group != nil {
		t.group.base().owners--
		t.group = nil
	}
}

// makeUngrouped clones the track's group data if any other track still
// references it, so a coming mutation cannot leak into tracks outside the
// intended scope. Reports whether a clone was made. An ungrouped track stays
// ungrouped.
func (t *Track) makeUngrouped() bool {
	g := t.group
	if g == nil || g.base().owners <= 1 {
		return false
	}
	t.attachGroup(g.Clone())
	return true
}

// Duplicate deep-clones the track's own state but shares the group data.
// Cloning of the group, when needed, is deferred until the duplicate actually
// joins a list, or avoided entirely when it replaces its original there.
func (t *Track) Duplicate() *Track {
	d := &Track{
		id:        t.id,
		height:    t.height,
		minimized: t.minimized,
		offset:    t.offset,
		data:      t.data.Clone(),
	}
	d.attachGroup(t.group)
	return d
}

// Notify posts a track data-change event carrying an opaque change code.
func (t *Track) Notify(code int) {
	if t.list != nil {
		t.list.dataEvent(t, code)
	}
}

// SubstitutePendingChangedTrack returns the staged duplicate shadowing this
// track's id, if the owning list has one, otherwise the track itself.
func (t *Track) SubstitutePendingChangedTrack() *Track {
	if l := t.list; l != nil {
		for _, p := range l.pendingUpdates {
			if p.id == t.id {
				return p
			}
		}
	}
	return t
}

// SubstituteOriginalTrack returns the live original in the main sequence when
// this track's id is shadowed by a staged duplicate, otherwise the track
// itself.
func (t *Track) SubstituteOriginalTrack() *Track {
	if l := t.list; l != nil {
		for _, p := range l.pendingUpdates {
			if p.id == t.id {
				if orig := l.FindByID(t.id); orig != nil {
					return orig
				}
				break
			}
		}
	}
	return t
}

// IsSyncLockSelected reports whether the track should follow edits to a
// selected track in its sync-lock group. The whole mechanism sits behind the
// list's sync-lock policy toggle and reports false while that is off.
func (t *Track) IsSyncLockSelected() bool {
	l := t.list
	if l == nil || !l.syncLocked {
		return false
	}
	orig := t.SubstituteOriginalTrack()
	n, anySelected := 0, false
	for m := range l.SyncLockGroup(orig) {
		n++
		if m.Selected() {
			anySelected = true
		}
	}
	if n <= 1 {
		// Not in a sync-locked group: selected and of an eligible kind.
		k := orig.Kind()
		return (k.SyncLockable() || k == audacity.KindLabel) && t.Selected()
	}
	return anySelected
}
