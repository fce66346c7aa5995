package tracklist

// Opaque change codes carried by data-change events, so an observer can tell
// what moved without trusting stale payload data.
const (
	ChangeGeneric int = iota
	ChangeName
	ChangeMute
	ChangeSolo
)

// Group is the metadata shared by every track of one channel group. Two
// tracks belong to the same group iff they hold the same Group instance;
// value equality means nothing. Concrete kinds are GroupData and, for groups
// whose tracks produce audio, PlayableGroupData.
type Group interface {
	Name() string
	SetName(string)
	Selected() bool
	SetSelected(bool)

	// Clone returns an independent copy of the same concrete kind, decoupled
	// from the original.
	Clone() Group

	base() *GroupData
}

// GroupData is the base group metadata: name and selection.
type GroupData struct {
	name     string
	selected bool

	// list is a non-owning back reference for change notification; nil once
	// the group has no live list, which turns Notify into a no-op.
	list *TrackList

	// owners counts the tracks (live, staged, or orphaned) referencing this
	// instance; copy-on-write clones when a mutation would reach more of them
	// than intended.
	owners int

	// self is the full concrete value, so notifications from the embedded
	// base carry the right dynamic type.
	self Group
}

func newGroupData(name string) *GroupData {
	g := &GroupData{name: name}
	g.self = g
	return g
}

func (g *GroupData) base() *GroupData { return g }

func (g *GroupData) Clone() Group {
	c := &GroupData{name: g.name, selected: g.selected, list: g.list}
	c.self = c
	return c
}

func (g *GroupData) notify(code int) {
	if g.list != nil {
		g.list.groupDataEvent(g.self, code)
	}
}

func (g *GroupData) Name() string { return g.name }

func (g *GroupData) SetName(name string) {
	if g.name != name {
		g.name = name
		g.notify(ChangeName)
	}
}

func (g *GroupData) Selected() bool { return g.selected }

func (g *GroupData) SetSelected(selected bool) {
	if g.selected != selected {
		g.selected = selected
		if g.list != nil {
			g.list.groupSelectionEvent(g.self)
		}
	}
}

// PlayableGroupData extends the group metadata with the mute and solo state
// of groups whose tracks can be played.
type PlayableGroupData struct {
	GroupData
	mute, solo bool
}

func newPlayableGroupData(name string) *PlayableGroupData {
	g := &PlayableGroupData{GroupData: GroupData{name: name}}
	g.self = g
	return g
}

func (g *PlayableGroupData) Clone() Group {
	c := &PlayableGroupData{
		GroupData: GroupData{name: g.name, selected: g.selected, list: g.list},
		mute:      g.mute,
		solo:      g.solo,
	}
	c.self = c
	return c
}

func (g *PlayableGroupData) Mute() bool { return g.mute }

func (g *PlayableGroupData) SetMute(mute bool) {
	if g.mute != mute {
		g.mute = mute
		g.notify(ChangeMute)
	}
}

func (g *PlayableGroupData) Solo() bool { return g.solo }

func (g *PlayableGroupData) SetSolo(solo bool) {
	if g.solo != solo {
		g.solo = solo
		g.notify(ChangeSolo)
	}
}

// newGroupFor picks the concrete group kind for a track's payload.
func newGroupFor(t *Track) Group {
	name := t.Kind().DefaultName()
	if t.Kind().Playable() {
		return newPlayableGroupData(name)
	}
	return newGroupData(name)
}
