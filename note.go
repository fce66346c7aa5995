package audacity

import "gitlab.com/gomidi/midi/v2"

// NoteData is the payload of a MIDI note track: timestamped MIDI messages on
// one channel. The messages are kept in raw wire form; interpretation is up
// to playback, which is outside this model.
type NoteData struct {
	Channel uint8       `yaml:"channel"`
	Events  []NoteEvent `yaml:"events,flow,omitempty"`
}

// NoteEvent pairs a MIDI message with its time in seconds.
type NoteEvent struct {
	Time float64      `yaml:"time"`
	Msg  midi.Message `yaml:"msg"`
}

func (d *NoteData) Kind() Kind { return KindNote }

// Clone makes a deep copy of the payload, including the message bytes.
func (d *NoteData) Clone() TrackData {
	events := make([]NoteEvent, len(d.Events))
	for i, e := range d.Events {
		events[i] = NoteEvent{Time: e.Time, Msg: append(midi.Message(nil), e.Msg...)}
	}
	return &NoteData{Channel: d.Channel, Events: events}
}

func (d *NoteData) StartTime() float64 {
	if len(d.Events) == 0 {
		return 0
	}
	t := d.Events[0].Time
	for _, e := range d.Events[1:] {
		if e.Time < t {
			t = e.Time
		}
	}
	return t
}

func (d *NoteData) EndTime() float64 {
	t := 0.0
	for _, e := range d.Events {
		if e.Time > t {
			t = e.Time
		}
	}
	return t
}
