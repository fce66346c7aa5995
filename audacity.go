// Package audacity contains the data model for the track payloads of a
// multitrack audio project: the closed set of track kinds (wave, note, label
// and time tracks) and the per-kind payload types consumed by the tracklist
// package, which owns ordering, grouping and staging of the tracks
// themselves.
package audacity

import "fmt"

// Kind enumerates the track kinds of a project. The set is closed: code
// dispatching on a Kind should switch over all four values.
type Kind int

const (
	KindWave Kind = iota
	KindNote
	KindLabel
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindWave:
		return "wave"
	case KindNote:
		return "note"
	case KindLabel:
		return "label"
	case KindTime:
		return "time"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "wave":
		return KindWave, nil
	case "note":
		return KindNote, nil
	case "label":
		return KindLabel, nil
	case "time":
		return KindTime, nil
	}
	return 0, fmt.Errorf("unknown track kind %q", s)
}

// Playable reports whether tracks of this kind produce audio and thus carry
// mute and solo state in their group data.
func (k Kind) Playable() bool {
	switch k {
	case KindWave, KindNote:
		return true
	case KindLabel, KindTime:
		return false
	}
	return false
}

// SyncLockable reports whether tracks of this kind can form the audio section
// of a sync-lock group. Label tracks are not sync-lockable themselves but may
// trail a sync-lock group; time tracks take no part at all.
func (k Kind) SyncLockable() bool {
	switch k {
	case KindWave, KindNote:
		return true
	case KindLabel, KindTime:
		return false
	}
	return false
}

// DefaultName returns the name a freshly created channel group of this kind
// gets before the user renames it.
func (k Kind) DefaultName() string {
	switch k {
	case KindWave:
		return "Audio Track"
	case KindNote:
		return "Note Track"
	case KindLabel:
		return "Label Track"
	case KindTime:
		return "Time Track"
	}
	return ""
}
