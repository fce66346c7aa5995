package tracklist_test

import (
	"math"
	"testing"

	"github.com/Robert-J-H/audacity"
	"github.com/Robert-J-H/audacity/tracklist"
)

func newWave() *tracklist.Track {
	return tracklist.NewTrack(&audacity.WaveData{
		SampleRate: 44100,
		Clips:      []audacity.WaveClip{{Start: 0, Duration: 10}},
	})
}

func newLabel() *tracklist.Track {
	return tracklist.NewTrack(&audacity.LabelData{})
}

func newTime() *tracklist.Track {
	return tracklist.NewTrack(&audacity.TimeData{RangeLower: 0.1, RangeUpper: 10})
}

// checkPositions verifies that every index matches the track's ordinal and
// every vertical offset is the sum of the heights before it.
func checkPositions(t *testing.T, l *tracklist.TrackList) {
	t.Helper()
	i, y := 0, 0
	for tr := range l.All() {
		if tr.Index() != i {
			t.Errorf("track %d has index %d", i, tr.Index())
		}
		if tr.Y() != y {
			t.Errorf("track %d has y %d, expected %d", i, tr.Y(), y)
		}
		i++
		y += tr.Height()
	}
	if l.Len() != i {
		t.Errorf("Len() = %d, walked %d tracks", l.Len(), i)
	}
	if l.Height() != y {
		t.Errorf("Height() = %d, expected %d", l.Height(), y)
	}
}

func order(l *tracklist.TrackList) []tracklist.TrackID {
	var ids []tracklist.TrackID
	for tr := range l.All() {
		ids = append(ids, tr.ID())
	}
	return ids
}

func sameOrder(a, b []tracklist.TrackID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func drainEvents(l *tracklist.TrackList) []tracklist.Event {
	var events []tracklist.Event
	for {
		select {
		case e := <-l.Events():
			events = append(events, e)
		default:
			return events
		}
	}
}

func TestAddAssignsIdsAndPositions(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	b := l.Add(newWave(), true)
	c := l.Add(newWave(), true)

	if a.ID() != 0 || b.ID() != 1 || c.ID() != 2 {
		t.Errorf("ids = %d, %d, %d; expected 0, 1, 2", a.ID(), b.ID(), c.ID())
	}
	if b.Y() != tracklist.DefaultHeight || c.Y() != 2*tracklist.DefaultHeight {
		t.Errorf("y = %d, %d; expected %d, %d", b.Y(), c.Y(), tracklist.DefaultHeight, 2*tracklist.DefaultHeight)
	}
	checkPositions(t, l)

	events := drainEvents(l)
	if len(events) != 3 {
		t.Fatalf("got %d events, expected 3", len(events))
	}
	for _, e := range events {
		if e.Kind != tracklist.EventAddition {
			t.Errorf("got %v event, expected addition", e.Kind)
		}
	}
	if events[2].Track != c {
		t.Errorf("last addition event does not carry the added track")
	}
}

func TestAddToHead(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	b := l.AddToHead(newWave())

	if b.Index() != 0 || a.Index() != 1 {
		t.Errorf("indices = %d, %d after AddToHead", b.Index(), a.Index())
	}
	if b.ID() != 1 {
		t.Errorf("prepended track got id %d, expected 1", b.ID())
	}
	checkPositions(t, l)
}

func TestAddAsChannelSharesGroup(t *testing.T) {
	l := tracklist.New()
	left := l.Add(newWave(), true)
	right := l.Add(newWave(), false)

	if left.GroupData() != right.GroupData() {
		t.Fatal("channels of one group do not share group data")
	}
	if !left.IsLeader() || right.IsLeader() {
		t.Errorf("IsLeader = %v, %v; expected true, false", left.IsLeader(), right.IsLeader())
	}
	if n := l.ChannelCount(left); n != 2 {
		t.Errorf("ChannelCount = %d, expected 2", n)
	}

	left.GroupData().SetName("Stereo")
	if right.Name() != "Stereo" {
		t.Errorf("follower name = %q, expected the shared name", right.Name())
	}
}

func TestAddAsLeaderClonesSharedGroup(t *testing.T) {
	l := tracklist.New()
	left := l.Add(newWave(), true)
	right := l.Add(newWave(), false)

	d := right.Duplicate()
	other := tracklist.New()
	other.Add(d, true)

	if d.GroupData() == right.GroupData() {
		t.Fatal("adding a duplicate as leader should clone the shared group data")
	}
	d.GroupData().SetName("Copy")
	if left.Name() == "Copy" {
		t.Error("mutation through the clone leaked into the source group")
	}
}

func TestGroupChannels(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	b := l.Add(newWave(), true)
	c := l.Add(newWave(), true)

	l.GroupChannels(a, 2)

	if a.GroupData() != b.GroupData() {
		t.Error("grouped channels do not share group data")
	}
	if c.GroupData() == a.GroupData() {
		t.Error("track outside the group shares its data")
	}
	if got := l.FindLeader(b); got != a {
		t.Errorf("FindLeader(follower) = track %d, expected the leader", got.ID())
	}
	checkPositions(t, l)
}

func TestGroupChannelsCapsAtStereo(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	l.Add(newWave(), true)
	l.Add(newWave(), true)

	l.GroupChannels(a, 3)
	if n := l.ChannelCount(a); n != 2 {
		t.Errorf("ChannelCount = %d after grouping 3, expected the stereo cap of 2", n)
	}
}

func TestGroupChannelsPanicsPastEnd(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)

	defer func() {
		if _, ok := recover().(*tracklist.InconsistencyError); !ok {
			t.Error("expected an InconsistencyError panic")
		}
	}()
	l.GroupChannels(a, 2)
	t.Fatal("grouping past the end of the list did not panic")
}

func TestMinimizedGroupSplitsMinimumHeight(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	b := l.Add(newWave(), false)

	a.SetMinimized(true)
	b.SetMinimized(true)

	if h := a.Height() + b.Height(); h != tracklist.MinimumHeight {
		t.Errorf("minimized group height = %d, expected %d", h, tracklist.MinimumHeight)
	}
	if a.ActualHeight() != tracklist.DefaultHeight {
		t.Errorf("ActualHeight changed to %d when minimizing", a.ActualHeight())
	}
	checkPositions(t, l)
}

func TestRemove(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	b := l.Add(newWave(), true)
	c := l.Add(newWave(), true)
	drainEvents(l)

	next := l.Remove(b)
	if next == nil || next.Track() != c {
		t.Fatal("Remove did not return the following node")
	}
	if b.List() != nil || b.Node() != nil {
		t.Error("removed track still points at the list")
	}
	if l.Contains(b) {
		t.Error("removed track still reported as a member")
	}
	if c.Index() != 1 || c.Y() != a.Height() {
		t.Errorf("positions not recomputed after Remove: index %d, y %d", c.Index(), c.Y())
	}
	checkPositions(t, l)

	events := drainEvents(l)
	if len(events) != 1 || events[0].Kind != tracklist.EventDeletion {
		t.Errorf("events after Remove = %v, expected one deletion", events)
	}

	if l.Remove(b) != nil {
		t.Error("removing a non-member should return nil")
	}
}

func TestReplaceKeepsIdAndGroupShape(t *testing.T) {
	l := tracklist.New()
	left := l.Add(newWave(), true)
	right := l.Add(newWave(), false)
	drainEvents(l)

	with := newWave()
	old := l.Replace(left, with)

	if old != left {
		t.Fatal("Replace did not return the orphaned track")
	}
	if with.ID() != old.ID() {
		t.Errorf("replacement id %d, expected to inherit %d", with.ID(), old.ID())
	}
	if old.List() != nil {
		t.Error("orphan still points at the list")
	}
	if with.GroupData() != right.GroupData() {
		t.Error("replacement did not join the old track's group")
	}
	checkPositions(t, l)

	events := drainEvents(l)
	if len(events) != 2 || events[0].Kind != tracklist.EventDeletion || events[1].Kind != tracklist.EventAddition {
		t.Errorf("events after Replace = %v, expected deletion then addition", events)
	}
}

func TestReplaceMakesIncomingDataCanonical(t *testing.T) {
	l := tracklist.New()
	left := l.Add(newWave(), true)
	right := l.Add(newWave(), false)

	other := tracklist.New()
	with := other.Add(newWave(), true)
	with.GroupData().SetName("Incoming")
	other.Remove(with)

	l.Replace(left, with)

	if right.GroupData() != with.GroupData() {
		t.Error("remaining channel was not re-pointed at the incoming group data")
	}
	if right.Name() != "Incoming" {
		t.Errorf("remaining channel name = %q", right.Name())
	}
}

func TestSwapNodesMovesWholeGroups(t *testing.T) {
	l := tracklist.New()
	left := l.Add(newWave(), true)
	right := l.Add(newWave(), false)
	c := l.Add(newWave(), true)
	drainEvents(l)

	l.SwapNodes(right.Node(), c.Node())

	want := []tracklist.TrackID{c.ID(), left.ID(), right.ID()}
	if got := order(l); !sameOrder(got, want) {
		t.Errorf("order after SwapNodes = %v, expected %v", got, want)
	}
	checkPositions(t, l)

	events := drainEvents(l)
	if len(events) != 1 || events[0].Kind != tracklist.EventPermutation {
		t.Errorf("events after SwapNodes = %v, expected one permutation", events)
	}
}

func TestSwapNodesAdjacentMonoTracks(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	b := l.Add(newWave(), true)
	c := l.Add(newWave(), true)

	l.SwapNodes(a.Node(), b.Node())

	want := []tracklist.TrackID{b.ID(), a.ID(), c.ID()}
	if got := order(l); !sameOrder(got, want) {
		t.Errorf("order = %v, expected %v", got, want)
	}
	checkPositions(t, l)
}

func TestSwapNodesSameGroupIsNoop(t *testing.T) {
	l := tracklist.New()
	left := l.Add(newWave(), true)
	right := l.Add(newWave(), false)
	before := order(l)

	l.SwapNodes(left.Node(), right.Node())
	if got := order(l); !sameOrder(got, before) {
		t.Errorf("order changed to %v swapping within one group", got)
	}
}

func TestSwapNodesPanicsOnForeignNode(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	other := tracklist.New()
	b := other.Add(newWave(), true)

	defer func() {
		if _, ok := recover().(*tracklist.InconsistencyError); !ok {
			t.Error("expected an InconsistencyError panic")
		}
	}()
	l.SwapNodes(a.Node(), b.Node())
	t.Fatal("swapping with a foreign node did not panic")
}

func TestMoveUpDown(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	b := l.Add(newWave(), false)
	c := l.Add(newWave(), true)

	if l.CanMoveUp(a) {
		t.Error("first group reports CanMoveUp")
	}
	if l.CanMoveDown(c) {
		t.Error("last track reports CanMoveDown")
	}

	if !l.MoveUp(c) {
		t.Fatal("MoveUp failed")
	}
	want := []tracklist.TrackID{c.ID(), a.ID(), b.ID()}
	if got := order(l); !sameOrder(got, want) {
		t.Errorf("order after MoveUp = %v, expected %v", got, want)
	}

	if !l.MoveDown(c) {
		t.Fatal("MoveDown failed")
	}
	want = []tracklist.TrackID{a.ID(), b.ID(), c.ID()}
	if got := order(l); !sameOrder(got, want) {
		t.Errorf("order after MoveDown = %v, expected %v", got, want)
	}
	checkPositions(t, l)
}

func TestPermuteRoundTrip(t *testing.T) {
	l := tracklist.New()
	var nodes []*tracklist.Node
	for i := 0; i < 4; i++ {
		nodes = append(nodes, l.Add(newWave(), true).Node())
	}
	before := order(l)

	l.Permute([]*tracklist.Node{nodes[2], nodes[0], nodes[3], nodes[1]})
	checkPositions(t, l)
	if got := order(l); sameOrder(got, before) {
		t.Fatal("permutation left the order unchanged")
	}

	l.Permute([]*tracklist.Node{nodes[0], nodes[1], nodes[2], nodes[3]})
	if got := order(l); !sameOrder(got, before) {
		t.Errorf("inverse permutation gave %v, expected %v", got, before)
	}
	checkPositions(t, l)
}

func TestSetHeightRecomputesBelow(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	b := l.Add(newWave(), true)
	drainEvents(l)

	a.SetHeight(200)

	if b.Y() != 200 {
		t.Errorf("track below has y %d after resize, expected 200", b.Y())
	}
	checkPositions(t, l)

	events := drainEvents(l)
	if len(events) != 1 || events[0].Kind != tracklist.EventResizing {
		t.Errorf("events after SetHeight = %v, expected one resizing", events)
	}
}

func TestAggregates(t *testing.T) {
	l := tracklist.New()
	if l.StartTime() != 0 || l.EndTime() != 0 || l.MinOffset() != 0 {
		t.Error("aggregates of an empty list should be 0")
	}

	a := l.Add(newWave(), true)
	a.SetOffset(2)
	b := l.Add(newWave(), true)
	b.SetOffset(-1)

	if got := l.MinOffset(); got != -1 {
		t.Errorf("MinOffset = %g, expected -1", got)
	}
	if got := l.StartTime(); got != -1 {
		t.Errorf("StartTime = %g, expected -1", got)
	}
	if got := l.EndTime(); got != 12 {
		t.Errorf("EndTime = %g, expected 12", got)
	}
	if math.IsInf(l.EndTime(), 0) {
		t.Error("EndTime overflowed")
	}
}

func TestTimeTrack(t *testing.T) {
	l := tracklist.New()
	l.Add(newWave(), true)
	if l.TimeTrack() != nil {
		t.Error("TimeTrack found one in a list without any")
	}
	tt := l.Add(newTime(), true)
	if l.TimeTrack() != tt {
		t.Error("TimeTrack did not find the time track")
	}
}

func TestSelectionViews(t *testing.T) {
	l := tracklist.New()
	left := l.Add(newWave(), true)
	l.Add(newWave(), false)
	c := l.Add(newLabel(), true)

	left.GroupData().SetSelected(true)

	var selected, selectedLeaders int
	for range l.SelectedTracks() {
		selected++
	}
	for tr := range l.SelectedLeaders() {
		selectedLeaders++
		if tr != left {
			t.Errorf("unexpected selected leader %d", tr.ID())
		}
	}
	if selected != 2 || selectedLeaders != 1 {
		t.Errorf("selected = %d, leaders = %d; expected 2 and 1", selected, selectedLeaders)
	}

	var labels int
	for tr := range l.ByKind(audacity.KindLabel) {
		labels++
		if tr != c {
			t.Errorf("ByKind yielded track %d", tr.ID())
		}
	}
	if labels != 1 {
		t.Errorf("ByKind(label) yielded %d tracks", labels)
	}
}

func TestSyncLockGroups(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	b := l.Add(newWave(), true)
	lab := l.Add(newLabel(), true)
	tt := l.Add(newTime(), true)

	first, last := l.FindSyncLockGroup(lab)
	if first != a || last != lab {
		t.Errorf("sync-lock group of the label spans tracks %d..%d, expected %d..%d",
			first.ID(), last.ID(), a.ID(), lab.ID())
	}

	first, last = l.FindSyncLockGroup(tt)
	if first != tt || last != tt {
		t.Error("a lone unlockable track should be its own sync-lock group")
	}

	var n int
	for range l.SyncLockGroup(b) {
		n++
	}
	if n != 3 {
		t.Errorf("SyncLockGroup yielded %d tracks, expected 3", n)
	}
}

func TestIsSyncLockSelectedFollowsPolicy(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	b := l.Add(newWave(), true)
	lab := l.Add(newLabel(), true)

	a.GroupData().SetSelected(true)

	if b.IsSyncLockSelected() {
		t.Error("IsSyncLockSelected true while the policy is off")
	}

	l.SetSyncLocked(true)
	if !b.IsSyncLockSelected() || !lab.IsSyncLockSelected() {
		t.Error("tracks sharing a sync-lock group with a selected track should report selected")
	}

	a.GroupData().SetSelected(false)
	if b.IsSyncLockSelected() {
		t.Error("IsSyncLockSelected true with nothing selected in the group")
	}
}

func TestGroupDataEvents(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	drainEvents(l)

	g := a.GroupData().(*tracklist.PlayableGroupData)
	g.SetName("Lead")
	g.SetMute(true)
	g.SetMute(true) // no change, no event
	g.SetSelected(true)

	events := drainEvents(l)
	if len(events) != 3 {
		t.Fatalf("got %d events, expected 3", len(events))
	}
	if events[0].Kind != tracklist.EventGroupData || events[0].Code != tracklist.ChangeName {
		t.Errorf("first event = %+v, expected a name change", events[0])
	}
	if events[1].Code != tracklist.ChangeMute {
		t.Errorf("second event code = %d, expected mute change", events[1].Code)
	}
	if events[2].Kind != tracklist.EventGroupSelection {
		t.Errorf("third event kind = %v, expected group-selection", events[2].Kind)
	}
	if events[0].Group != g {
		t.Error("group event does not carry the concrete group value")
	}
}

func TestNotify(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	drainEvents(l)

	a.Notify(42)

	events := drainEvents(l)
	if len(events) != 1 || events[0].Kind != tracklist.EventTrackData {
		t.Fatalf("events after Notify = %v, expected one track-data event", events)
	}
	if events[0].Track != a || events[0].Code != 42 {
		t.Errorf("event carries track %v code %d", events[0].Track, events[0].Code)
	}
}

func TestClear(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	l.Add(newWave(), true)
	drainEvents(l)

	l.Clear(true)

	if !l.Empty() || l.Len() != 0 {
		t.Error("list not empty after Clear")
	}
	if a.List() != nil {
		t.Error("cleared track still points at the list")
	}
	events := drainEvents(l)
	if len(events) != 1 || events[0].Kind != tracklist.EventDeletion {
		t.Errorf("events after Clear = %v, expected one deletion", events)
	}
}

func TestFindByID(t *testing.T) {
	l := tracklist.New()
	a := l.Add(newWave(), true)
	b := l.Add(newWave(), true)

	if l.FindByID(a.ID()) != a || l.FindByID(b.ID()) != b {
		t.Error("FindByID did not find members")
	}
	if l.FindByID(99) != nil {
		t.Error("FindByID found a track that was never added")
	}
}
