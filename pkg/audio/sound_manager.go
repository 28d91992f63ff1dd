package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager is a Sink backed by a beep mixer. All clips are synthesised, so no
// audio files ship with the game.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	loop        *beep.Ctrl
	loopClip    Clip
	initialized bool
	logger      *zap.Logger
}

// NewSoundManager creates a manager with an empty mixer. Nothing is audible until
// Initialize opens the speaker.
func NewSoundManager(logger *zap.Logger) *SoundManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
}

// Initialize opens the speaker and starts streaming the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("open speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Info("audio initialized", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// Close silences everything
func (sm *SoundManager) Close() {
	sm.Stop()
	if sm.initialized {
		speaker.Clear()
	}
	sm.mu.Lock()
	sm.mixer.Clear()
	sm.initialized = false
	sm.mu.Unlock()
}

func (sm *SoundManager) PlayOneShot(c Clip) {
	s := oneShot(c)
	if s == nil {
		sm.logger.Debug("clip cannot play once", zap.Stringer("clip", c))
		return
	}
	sm.lock()
	defer sm.unlock()
	sm.mixer.Add(s)
}

func (sm *SoundManager) PlayLoop(c Clip) {
	s := looping(c)
	if s == nil {
		sm.logger.Debug("clip cannot loop", zap.Stringer("clip", c))
		return
	}
	sm.lock()
	defer sm.unlock()

	if sm.loop != nil {
		if sm.loopClip == c && !sm.loop.Paused {
			return
		}
		sm.loop.Paused = true
		sm.loop.Streamer = nil
	}
	sm.loop = &beep.Ctrl{Streamer: s}
	sm.loopClip = c
	sm.mixer.Add(sm.loop)
}

func (sm *SoundManager) Stop() {
	sm.lock()
	defer sm.unlock()

	if sm.loop == nil {
		return
	}
	// A Ctrl with a nil streamer reports itself drained, so the mixer drops it.
	sm.loop.Paused = true
	sm.loop.Streamer = nil
	sm.loop = nil
}

// Looping returns the clip currently looping
func (sm *SoundManager) Looping() (Clip, bool) {
	sm.lock()
	defer sm.unlock()
	if sm.loop == nil {
		return 0, false
	}
	return sm.loopClip, true
}

// lock takes the speaker lock as well once it is running, since the speaker
// goroutine reads the mixer.
func (sm *SoundManager) lock() {
	sm.mu.Lock()
	if sm.initialized {
		speaker.Lock()
	}
}

func (sm *SoundManager) unlock() {
	if sm.initialized {
		speaker.Unlock()
	}
	sm.mu.Unlock()
}

func oneShot(c Clip) beep.Streamer {
	switch c {
	case ClipEngineStart:
		return beep.Take(sampleRate.N(700*time.Millisecond), NewStarterGenerator(sampleRate))
	case ClipHorn:
		return beep.Take(sampleRate.N(400*time.Millisecond), NewHornGenerator(sampleRate))
	}
	return nil
}

func looping(c Clip) beep.Streamer {
	if c == ClipDriving {
		return NewEngineGenerator(sampleRate)
	}
	return nil
}
