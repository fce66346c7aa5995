package tracklist

import (
	"math"

	"github.com/Robert-J-H/audacity"
)

// TrackList is the ordered container of a project's tracks. It is the sole
// authority on membership and order: it assigns ids, maintains the geometry
// caches, enforces the channel-grouping invariants, and queues notifications
// about structural change. It also owns the pending-track overlay used for
// non-destructive preview edits; see pending.go.
//
// The list is single-threaded by design: all mutation happens on one logical
// thread of control, and the event queue exists to keep listeners from
// re-entering a mutation in progress, not to provide parallelism.
type TrackList struct {
	head, tail *Node

	// counter is the id generator, scoped to this list so independent
	// projects (and tests) stay isolated. It holds the last assigned id.
	counter int64

	pendingUpdates []*Track
	updaters       []Updater

	syncLocked bool

	events chan Event
}

// New creates an empty list. The first track added gets id 0.
func New() *TrackList {
	return &TrackList{
		counter: int64(UnassignedID),
		events:  make(chan Event, eventQueueSize),
	}
}

// SetSyncLocked toggles the sync-lock editing policy for this list. The
// policy defaults to off, in which case IsSyncLockSelected always reports
// false.
func (l *TrackList) SetSyncLocked(on bool) { l.syncLocked = on }

func (l *TrackList) IsSyncLocked() bool { return l.syncLocked }

func (l *TrackList) assignID(t *Track) {
	l.counter++
	t.id = TrackID(l.counter)
}

// Add appends t. With asLeader the track starts a new channel group: group
// data it may still share with tracks elsewhere is cloned first, so joining
// this list cannot leak grouping into them. Otherwise the track joins the
// group of the last track already in the list, materializing that group if
// needed. Returns t.
func (l *TrackList) Add(t *Track, asLeader bool) *Track {
	n := l.pushBack(t)

	if asLeader {
		if t.group != nil {
			t.makeUngrouped()
			t.group.base().list = l
		}
	} else if prev := n.prev; prev != nil {
		// force creation, then share
		g := prev.track.GroupData()
		t.attachGroup(g)
	}

	t.setOwner(l, n)
	l.assignID(t)
	l.RecalcPositions(n)
	l.additionEvent(n)
	return t
}

// AddToHead prepends t, always as a leader.
func (l *TrackList) AddToHead(t *Track) *Track {
	n := l.pushFront(t)

	if t.group != nil {
		t.makeUngrouped()
		t.group.base().list = l
	}

	t.setOwner(l, n)
	l.assignID(t)
	l.RecalcPositions(n)
	l.additionEvent(n)
	return t
}

// Remove detaches t from the list, clearing its back references first so the
// caller may keep it around for rollback as an orphan. Returns the node that
// followed it, or nil if t was last or not a member.
func (l *TrackList) Remove(t *Track) *Node {
	if t == nil || t.list != l || t.node == nil {
		return nil
	}
	node := t.node
	t.setOwner(nil, nil)

	next := node.next
	l.unlink(node)
	node.track, node.list = nil, nil
	if next != nil {
		l.RecalcPositions(next)
	}
	l.deletionEvent()
	return next
}

// Replace puts with in old's position, under old's id. Group membership is
// reconciled so the shape of the grouping does not change: shared data stays
// shared, one-sided data propagates to the other side (cloned if it would
// leak), and when both sides have distinct data the incoming data becomes
// canonical for the whole group. Returns the orphaned old track.
func (l *TrackList) Replace(old, with *Track) *Track {
	if old == nil || with == nil || old.list != l || old.node == nil {
		return nil
	}

	// The two may already share, for tracks prepared with Duplicate.
	switch {
	case old.group == with.group:
	case old.group == nil:
		// old was ungrouped; keep the replacement's data but not its sharing
		with.makeUngrouped()
	case with.group == nil:
		// the replacement joins old's group
		with.attachGroup(old.group)
	default:
		var channels []*Track
		for ch := range l.Channels(old) {
			channels = append(channels, ch)
		}
		for _, ch := range channels {
			ch.attachGroup(with.group)
		}
	}
	if with.group != nil {
		with.group.base().list = l
	}

	node := old.node
	old.setOwner(nil, nil)

	node.track = with
	with.setOwner(l, node)
	with.id = old.id
	l.RecalcPositions(node)

	l.deletionEvent()
	l.additionEvent(node)
	return old
}

// Permute moves the given nodes, in order, to the end of the sequence; a
// permutation covering every node therefore reorders the whole list. Handles
// stay valid.
func (l *TrackList) Permute(order []*Node) {
	for _, n := range order {
		l.unlink(n)
		l.linkTail(n)
	}
	if l.head != nil {
		l.RecalcPositions(l.head)
	}
	l.permutationEvent()
}

// SwapNodes exchanges the channel group holding a with the one holding b:
// each node is first expanded to its group leader and takes its whole
// contiguous run with it. Adjacent or identical ranges are handled without
// corrupting the order.
func (l *TrackList) SwapNodes(a, b *Node) {
	if a == nil || b == nil || a.list != l || b.list != l {
		inconsistencyf("SwapNodes on a node that is not in the list")
	}

	a = l.FindLeader(a.track).node
	b = l.FindLeader(b.track).node
	if a == b {
		return
	}

	// let a be the earlier range
	if a.track.index >= b.track.index {
		a, b = b, a
	}

	groupA := l.groupNodes(a.track)
	groupB := l.groupNodes(b.track)

	// anchors that survive unlinking both ranges
	anchorA := groupA[0].prev
	afterB := groupB[len(groupB)-1].next

	for _, n := range groupA {
		l.unlink(n)
	}
	for _, n := range groupB {
		l.unlink(n)
	}

	// B takes A's place, A goes in front of whatever followed B
	cur := anchorA
	for _, n := range groupB {
		l.insertNodeAfter(cur, n)
		cur = n
	}
	for _, n := range groupA {
		l.insertNodeBefore(afterB, n)
	}

	l.RecalcPositions(groupB[0])
	l.permutationEvent()
}

// MoveUp moves t's whole channel group before the previous group. Reports
// whether anything moved.
func (l *TrackList) MoveUp(t *Track) bool {
	if t == nil {
		return false
	}
	if p := l.prevLeader(t); p != nil {
		l.SwapNodes(p.node, t.node)
		return true
	}
	return false
}

// MoveDown moves t's whole channel group after the next group.
func (l *TrackList) MoveDown(t *Track) bool {
	if t == nil {
		return false
	}
	if n := l.nextLeader(t); n != nil {
		l.SwapNodes(t.node, n.node)
		return true
	}
	return false
}

func (l *TrackList) CanMoveUp(t *Track) bool   { return l.prevLeader(t) != nil }
func (l *TrackList) CanMoveDown(t *Track) bool { return l.nextLeader(t) != nil }

func (l *TrackList) prevLeader(t *Track) *Track {
	leader := l.FindLeader(t)
	if leader == nil || leader.node.prev == nil {
		return nil
	}
	return l.FindLeader(leader.node.prev.track)
}

func (l *TrackList) nextLeader(t *Track) *Track {
	group := l.groupNodes(l.FindLeader(t))
	if group == nil {
		return nil
	}
	if after := group[len(group)-1].next; after != nil {
		return after.track
	}
	return nil
}

// GroupChannels forces the size tracks starting at track into one shared
// channel group, with track as leader. Only the first two channels group as
// stereo for now; the structure could represent more, but the policy caps the
// size. Panics with an InconsistencyError if the list does not contain track
// or lacks size contiguous tracks from that point: continuing would break the
// grouping invariant.
func (l *TrackList) GroupChannels(track *Track, size int) {
	if size > 2 {
		size = 2
	}

	if size > 0 && track != nil && track.list == l && track.node != nil {
		count := size
		for n := track.node; n != nil && count > 0; n = n.next {
			count--
		}
		if count == 0 {
			// disassociate from previous sharing
			changed := track.makeUngrouped()

			if size > 1 {
				g := track.GroupData()
				n := track.node.next
				for i := 1; i < size; i, n = i+1, n.next {
					if n.track.group != g {
						n.track.attachGroup(g)
						changed = true
					}
				}
			}

			if changed {
				l.RecalcPositions(track.node)
				l.resizingEvent(track.node)
			}
			return
		}
	}
	id := UnassignedID
	if track != nil {
		id = track.id
	}
	inconsistencyf("cannot group %d channels starting at track %d", size, id)
}

// RecalcPositions rewrites the index and vertical-offset caches of every
// track from node to the end, seeding the running values from the node's
// predecessor, then refreshes the pending overlay so previews keep tracking
// the committed geometry.
func (l *TrackList) RecalcPositions(node *Node) {
	if node == nil {
		return
	}

	i, y := 0, 0
	if prev := node.prev; prev != nil {
		t := prev.track
		i = t.index + 1
		y = t.y + t.Height()
	}

	for n := node; n != nil; n = n.next {
		t := n.track
		t.index = i
		i++
		t.doSetY(y)
		y += t.Height()
	}

	// Updater failures surface when the overlay is applied; position
	// bookkeeping itself never fails.
	_ = l.UpdatePendingTracks()
}

// Clear empties the list, nulling the back references of every track first in
// case callers still hold some of them.
func (l *TrackList) Clear(sendEvent bool) {
	for n := l.head; n != nil; n = n.next {
		n.track.setOwner(nil, nil)
	}
	for _, p := range l.pendingUpdates {
		p.setOwner(nil, nil)
	}
	l.head, l.tail = nil, nil
	l.pendingUpdates = nil
	l.updaters = nil

	if sendEvent {
		l.deletionEvent()
	}
}

// Find returns t's node if t is a member of this list.
func (l *TrackList) Find(t *Track) *Node {
	if t == nil || t.list != l {
		return nil
	}
	return t.node
}

// FindLeader walks back from t to the leader of its channel group.
func (l *TrackList) FindLeader(t *Track) *Track {
	if t == nil || t.list != l || t.node == nil {
		return nil
	}
	for !t.IsLeader() {
		t = t.node.prev.track
	}
	return t
}

// FindByID looks a track up by id in the main sequence only, never in the
// pending overlay. Provisional tracks are not addressable: looking up
// UnassignedID finds nothing. Linear scan; tracks in a project are usually
// very few.
func (l *TrackList) FindByID(id TrackID) *Track {
	if id == UnassignedID {
		return nil
	}
	for n := l.head; n != nil; n = n.next {
		if n.track.id == id {
			return n.track
		}
	}
	return nil
}

// Contains reports whether t is a member of the main sequence.
func (l *TrackList) Contains(t *Track) bool {
	return t != nil && t.list == l && t.node != nil && t.node.list == l
}

func (l *TrackList) Empty() bool { return l.head == nil }

// Len returns the number of tracks, read off the last track's index cache.
func (l *TrackList) Len() int {
	if l.tail == nil {
		return 0
	}
	return l.tail.track.index + 1
}

// Height returns the total height of the list in pixels.
func (l *TrackList) Height() int {
	if l.tail == nil {
		return 0
	}
	t := l.tail.track
	return t.y + t.Height()
}

// GroupHeight returns the combined height of t's whole channel group.
func (l *TrackList) GroupHeight(t *Track) int {
	h := 0
	for ch := range l.Channels(t) {
		h += ch.Height()
	}
	return h
}

// ChannelCount returns the number of channels in t's group.
func (l *TrackList) ChannelCount(t *Track) int {
	n := 0
	for range l.Channels(t) {
		n++
	}
	return n
}

// TimeTrack returns the project's singleton time track, or nil.
func (l *TrackList) TimeTrack() *Track {
	for t := range l.ByKind(audacity.KindTime) {
		return t
	}
	return nil
}

func (l *TrackList) accumulate(ident float64, combine func(a, b float64) float64, get func(*Track) float64) float64 {
	// zero for an empty list, by convention
	if l.Empty() {
		return 0
	}
	v := ident
	for n := l.head; n != nil; n = n.next {
		v = combine(v, get(n.track))
	}
	return v
}

// MinOffset returns the earliest track offset in the project.
func (l *TrackList) MinOffset() float64 {
	return l.accumulate(math.MaxFloat64, math.Min, (*Track).Offset)
}

// StartTime and EndTime return the extent of the whole project.
func (l *TrackList) StartTime() float64 {
	return l.accumulate(math.MaxFloat64, math.Min, (*Track).StartTime)
}

func (l *TrackList) EndTime() float64 {
	return l.accumulate(-math.MaxFloat64, math.Max, (*Track).EndTime)
}

// FindSyncLockGroup finds the maximal run of sync-lockable tracks followed by
// label tracks that contains member: first expanding backwards through labels
// and the audio section before them, then forwards while the next track still
// extends the run. A track with no eligible neighbors is the sole member of
// its own group.
func (l *TrackList) FindSyncLockGroup(member *Track) (first, last *Track) {
	if member == nil || member.list != l || member.node == nil {
		return nil, nil
	}

	n := member.node
	for n != nil && n.track.Kind() == audacity.KindLabel {
		n = n.prev
	}
	for n != nil && n.track.Kind().SyncLockable() {
		first = n.track
		n = n.prev
	}

	if first == nil {
		return member, member
	}

	last = first
	inLabels := false
	for n = first.node.next; n != nil; n = n.next {
		if !isGoodNextSyncLockTrack(n.track, inLabels) {
			break
		}
		last = n.track
		inLabels = last.Kind() == audacity.KindLabel
	}
	return first, last
}

func isGoodNextSyncLockTrack(t *Track, inLabelSection bool) bool {
	isLabel := t.Kind() == audacity.KindLabel
	if inLabelSection {
		return isLabel
	}
	if isLabel {
		return true
	}
	return t.Kind().SyncLockable()
}

// groupNodes collects the nodes of leader's channel group, in order.
func (l *TrackList) groupNodes(leader *Track) []*Node {
	if leader == nil {
		return nil
	}
	var nodes []*Node
	for t := range l.Channels(leader) {
		nodes = append(nodes, t.node)
	}
	return nodes
}
