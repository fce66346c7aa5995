// Package project reads and writes the serialized form of a track list. The
// format is a YAML document of track records in list order. Shared group
// attributes (name, selection, mute, solo) are written for every channel for
// forward compatibility, but on load only the values seen on a group's
// leader are applied; follower records parse and discard them.
package project

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Robert-J-H/audacity"
	"github.com/Robert-J-H/audacity/tracklist"
)

// File is the serialized form of a project's track list.
type File struct {
	Tracks []Record `yaml:"tracks"`
}

// Record is one serialized track. Exactly one of the payload fields is set,
// matching Kind.
type Record struct {
	Kind      string  `yaml:"kind"`
	Name      string  `yaml:"name"`
	Selected  bool    `yaml:"isselected,omitempty"`
	Mute      bool    `yaml:"mute,omitempty"`
	Solo      bool    `yaml:"solo,omitempty"`
	Height    int     `yaml:"height"`
	Minimized bool    `yaml:"minimized,omitempty"`
	Offset    float64 `yaml:"offset,omitempty"`

	// Channels is the channel count of the group, recorded on leaders of
	// multi-channel groups only; zero elsewhere.
	Channels int `yaml:"channels,omitempty"`

	Wave  *audacity.WaveData  `yaml:"wave,omitempty"`
	Note  *audacity.NoteData  `yaml:"note,omitempty"`
	Label *audacity.LabelData `yaml:"label,omitempty"`
	Time  *audacity.TimeData  `yaml:"time,omitempty"`
}

// Save writes the track list to w.
func Save(w io.Writer, l *tracklist.TrackList) error {
	f := File{Tracks: make([]Record, 0, l.Len())}
	for t := range l.All() {
		rec := Record{
			Kind:      t.Kind().String(),
			Name:      t.Name(),
			Selected:  t.Selected(),
			Mute:      t.Mute(),
			Solo:      t.Solo(),
			Height:    t.ActualHeight(),
			Minimized: t.Minimized(),
			Offset:    t.Offset(),
		}
		if t.IsLeader() {
			if n := l.ChannelCount(t); n > 1 {
				rec.Channels = n
			}
		}
		switch d := t.Data().(type) {
		case *audacity.WaveData:
			rec.Wave = d
		case *audacity.NoteData:
			rec.Note = d
		case *audacity.LabelData:
			rec.Label = d
		case *audacity.TimeData:
			rec.Time = d
		default:
			return fmt.Errorf("cannot serialize track payload %T", d)
		}
		f.Tracks = append(f.Tracks, rec)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("could not encode project: %w", err)
	}
	return nil
}

// Load decodes a project file and appends its tracks to l, finalizing
// channel groups as their expected channel counts complete.
func Load(r io.Reader, l *tracklist.TrackList) error {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return fmt.Errorf("could not decode project: %w", err)
	}

	ld := newLoader(l)
	for i := range f.Tracks {
		if err := ld.addRecord(&f.Tracks[i]); err != nil {
			return err
		}
	}
	ld.finish()
	return nil
}

// loader tracks the in-progress channel group during a sequential load: the
// leader declares how many channels follow, and once that many have loaded
// the group is finalized with GroupChannels.
type loader struct {
	list     *tracklist.TrackList
	first    *tracklist.Track // leader of the group being loaded
	expected int              // channel count the leader declared
	counter  int              // channels loaded toward expected
}

func newLoader(l *tracklist.TrackList) *loader {
	return &loader{list: l}
}

// loadingLeader reports whether the next record starts a new group, i.e.
// whether shared attributes should be applied rather than discarded.
func (ld *loader) loadingLeader() bool { return ld.counter == 0 }

func (ld *loader) addRecord(rec *Record) error {
	data, err := rec.data()
	if err != nil {
		return err
	}
	t := tracklist.NewTrack(data)
	ld.list.Add(t, true)
	t.SetHeight(rec.Height)
	t.SetMinimized(rec.Minimized)
	t.SetOffset(rec.Offset)

	if ld.loadingLeader() {
		ld.first = t
		ld.expected = rec.Channels
		if ld.expected < 1 {
			ld.expected = 1
		}
		g := t.GroupData()
		g.SetName(rec.Name)
		g.SetSelected(rec.Selected)
		if pg, ok := g.(*tracklist.PlayableGroupData); ok {
			pg.SetMute(rec.Mute)
			pg.SetSolo(rec.Solo)
		}
	}

	ld.counter++
	if ld.counter >= ld.expected {
		ld.groupLoaded()
	}
	return nil
}

// finish closes a group left incomplete by a truncated file. The tracks stay
// in the list ungrouped rather than being thrown away.
func (ld *loader) finish() {
	if ld.counter > 0 && ld.counter < ld.expected {
		log.Warnf("defective final channel group: expected %d channels, found %d", ld.expected, ld.counter)
		ld.reset()
	}
}

func (ld *loader) groupLoaded() {
	if ld.counter > 1 && ld.first != nil {
		ld.list.GroupChannels(ld.first, ld.counter)
	}
	ld.reset()
}

func (ld *loader) reset() {
	ld.first = nil
	ld.expected, ld.counter = 0, 0
}

func (r *Record) data() (audacity.TrackData, error) {
	kind, err := audacity.ParseKind(r.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case audacity.KindWave:
		if r.Wave != nil {
			return r.Wave, nil
		}
		return &audacity.WaveData{}, nil
	case audacity.KindNote:
		if r.Note != nil {
			return r.Note, nil
		}
		return &audacity.NoteData{}, nil
	case audacity.KindLabel:
		if r.Label != nil {
			return r.Label, nil
		}
		return &audacity.LabelData{}, nil
	case audacity.KindTime:
		if r.Time != nil {
			return r.Time, nil
		}
		return &audacity.TimeData{}, nil
	}
	return nil, fmt.Errorf("unknown track kind %q", r.Kind)
}
