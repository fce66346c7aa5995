package audacity

// WaveData is the payload of a sampled-audio track. Sample storage and
// resampling live behind the clip references elsewhere; this model only keeps
// the clip extents, which is all the list core and the project file need.
type WaveData struct {
	SampleRate float64    `yaml:"samplerate"`
	Clips      []WaveClip `yaml:"clips,flow,omitempty"`
}

// WaveClip is one contiguous run of audio within a wave track.
type WaveClip struct {
	Start    float64 `yaml:"start"`
	Duration float64 `yaml:"duration"`
}

func (d *WaveData) Kind() Kind { return KindWave }

// Clone makes a deep copy of the payload.
func (d *WaveData) Clone() TrackData {
	clips := make([]WaveClip, len(d.Clips))
	copy(clips, d.Clips)
	return &WaveData{SampleRate: d.SampleRate, Clips: clips}
}

func (d *WaveData) StartTime() float64 {
	if len(d.Clips) == 0 {
		return 0
	}
	t := d.Clips[0].Start
	for _, c := range d.Clips[1:] {
		if c.Start < t {
			t = c.Start
		}
	}
	return t
}

func (d *WaveData) EndTime() float64 {
	t := 0.0
	for _, c := range d.Clips {
		if end := c.Start + c.Duration; end > t {
			t = end
		}
	}
	return t
}
