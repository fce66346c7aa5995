package audacity

// TrackData is the payload a track carries: everything kind-specific that the
// list core does not need to understand. The core only asks for the kind, for
// an independent deep copy when duplicating a track, and for the time extent
// when computing project-wide aggregates. Times are in seconds, relative to
// the track's own offset.
type TrackData interface {
	Kind() Kind
	Clone() TrackData
	StartTime() float64
	EndTime() float64
}
