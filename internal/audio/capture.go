// Package audio captures microphone input through PortAudio.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/Hegghammer/whisper-dictation/internal/domain"
)

// ErrDeviceUnavailable indicates the input device could not be opened.
var ErrDeviceUnavailable = errors.New("audio input device unavailable")

const (
	channels        = 1
	framesPerBuffer = 1024
)

// PortAudio is initialized on first Start, not at construction, so wiring
// the capture does not touch the hardware.
var (
	initOnce sync.Once
	initErr  error
)

func ensureInitialized() error {
	initOnce.Do(func() {
		initErr = portaudio.Initialize()
	})
	return initErr
}

// Capture records one clip at a time from the default input device. It
// implements ports.Recorder: Start opens a mono input stream and
// accumulates frames on a background goroutine, Stop drains it and returns
// the clip. Captures shorter than the minimum duration come back as the
// empty clip so the caller can discard them without a round trip.
type Capture struct {
	sampleRate int
	minClip    time.Duration

	mu      sync.Mutex
	stream  *portaudio.Stream
	buffer  []float32
	samples []float32
	running bool
	done    chan struct{}
}

// NewCapture builds a capture for the given sample rate and minimum clip
// duration. The device itself is only touched on Start.
func NewCapture(sampleRate int, minClip time.Duration) *Capture {
	return &Capture{
		sampleRate: sampleRate,
		minClip:    minClip,
		buffer:     make([]float32, framesPerBuffer),
	}
}

// Start opens the default input stream and begins recording.
func (c *Capture) Start() error {
	if err := ensureInitialized(); err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return errors.New("capture already running")
	}

	c.samples = make([]float32, 0, c.sampleRate*30)
	c.done = make(chan struct{})

	stream, err := portaudio.OpenDefaultStream(
		channels,
		0,
		float64(c.sampleRate),
		framesPerBuffer,
		c.buffer,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	c.stream = stream
	c.running = true
	go c.recordLoop()

	return nil
}

func (c *Capture) recordLoop() {
	defer close(c.done)

	for {
		c.mu.Lock()
		running := c.running
		stream := c.stream
		c.mu.Unlock()

		if !running || stream == nil {
			return
		}

		available, err := stream.AvailableToRead()
		if err != nil || available == 0 {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		if err := stream.Read(); err != nil {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		c.mu.Lock()
		if c.running {
			c.samples = append(c.samples, c.buffer...)
		}
		c.mu.Unlock()
	}
}

// Stop ends the recording and returns the finished clip. A capture below
// the minimum duration yields the empty clip and no error.
func (c *Capture) Stop() (domain.Clip, error) {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return domain.Clip{}, errors.New("capture not running")
	}

	c.running = false
	stream := c.stream
	c.stream = nil
	samples := c.samples
	c.samples = nil
	done := c.done
	c.mu.Unlock()

	// The loop checks running every poll interval; the stream must not
	// close underneath it.
	<-done

	if stream != nil {
		stream.Stop()
		if err := stream.Close(); err != nil {
			return domain.Clip{}, fmt.Errorf("failed to close input stream: %w", err)
		}
	}

	clip := toClip(samples, c.sampleRate)
	if clip.Duration() < c.minClip {
		return domain.Clip{SampleRate: c.sampleRate}, nil
	}
	return clip, nil
}

// Close releases the PortAudio host API. Safe to call once at shutdown.
func (c *Capture) Close() error {
	c.mu.Lock()
	running := c.running
	c.mu.Unlock()
	if running {
		if _, err := c.Stop(); err != nil {
			return err
		}
	}
	return portaudio.Terminate()
}

// toClip converts float32 samples in [-1, 1] to 16-bit PCM with clamping.
func toClip(samples []float32, sampleRate int) domain.Clip {
	if len(samples) == 0 {
		return domain.Clip{SampleRate: sampleRate}
	}
	pcm := make([]int16, len(samples))
	for i, s := range samples {
		switch {
		case s > 1:
			pcm[i] = 32767
		case s < -1:
			pcm[i] = -32768
		default:
			pcm[i] = int16(s * 32767)
		}
	}
	return domain.Clip{PCM: pcm, SampleRate: sampleRate}
}
