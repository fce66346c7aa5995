package audacity

// LabelData is the payload of a label track: timestamped text annotations.
type LabelData struct {
	Labels []Label `yaml:"labels,flow,omitempty"`
}

// Label is a single annotation.
type Label struct {
	Time float64 `yaml:"time"`
	Text string  `yaml:"text"`
}

func (d *LabelData) Kind() Kind { return KindLabel }

// Clone makes a deep copy of the payload.
func (d *LabelData) Clone() TrackData {
	labels := make([]Label, len(d.Labels))
	copy(labels, d.Labels)
	return &LabelData{Labels: labels}
}

func (d *LabelData) StartTime() float64 {
	if len(d.Labels) == 0 {
		return 0
	}
	t := d.Labels[0].Time
	for _, l := range d.Labels[1:] {
		if l.Time < t {
			t = l.Time
		}
	}
	return t
}

func (d *LabelData) EndTime() float64 {
	t := 0.0
	for _, l := range d.Labels {
		if l.Time > t {
			t = l.Time
		}
	}
	return t
}
