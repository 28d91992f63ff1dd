package audio

// Clip is one of the car sounds
type Clip int

const (
	ClipEngineStart Clip = iota
	ClipDriving
	ClipHorn
)

func (c Clip) String() string {
	switch c {
	case ClipEngineStart:
		return "engine-start"
	case ClipDriving:
		return "driving"
	case ClipHorn:
		return "horn"
	}
	return "unknown"
}

// Sink plays clips. Implementations never fail: a sink that cannot play is silent.
type Sink interface {
	// PlayOneShot plays a clip once over whatever else is playing
	PlayOneShot(c Clip)
	// PlayLoop replaces the looping clip
	PlayLoop(c Clip)
	// Stop silences and forgets the looping clip
	Stop()
}

// Nop is a silent Sink
type Nop struct{}

func (Nop) PlayOneShot(Clip) {}
func (Nop) PlayLoop(Clip)    {}
func (Nop) Stop()            {}
