package audacity

// TimeData is the payload of the time (tempo envelope) track. A project has
// at most one; the list core exposes a lookup for it.
type TimeData struct {
	RangeLower float64     `yaml:"rangelower"`
	RangeUpper float64     `yaml:"rangeupper"`
	Points     []TimePoint `yaml:"points,flow,omitempty"`
}

// TimePoint is one control point of the envelope.
type TimePoint struct {
	Time  float64 `yaml:"time"`
	Value float64 `yaml:"value"`
}

func (d *TimeData) Kind() Kind { return KindTime }

// Clone makes a deep copy of the payload.
func (d *TimeData) Clone() TrackData {
	points := make([]TimePoint, len(d.Points))
	copy(points, d.Points)
	return &TimeData{RangeLower: d.RangeLower, RangeUpper: d.RangeUpper, Points: points}
}

func (d *TimeData) StartTime() float64 {
	if len(d.Points) == 0 {
		return 0
	}
	return d.Points[0].Time
}

func (d *TimeData) EndTime() float64 {
	if len(d.Points) == 0 {
		return 0
	}
	return d.Points[len(d.Points)-1].Time
}
