package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/harris-jacob/gb-emulator/internal/apu"
)

const (
	// Audio output sample rate (Hz).
	sampleRate = 48000

	// Audio buffer size in bytes.
	// Larger buffer = more latency but less chance of underrun.
	audioBufferSize = 4096

	// highPassCutoff is the DC-blocking one-pole filter's pole position.
	highPassCutoff = 0.996

	// lowPassCutoff is the anti-aliasing one-pole filter's smoothing factor.
	lowPassCutoff = 0.65

	// ditherAmplitude is the peak size (maximum magnitude) of the triangular
	// dither in int16 LSBs.
	ditherAmplitude = 1.0
)

// AudioOptions toggles the post-processing stages applied to APU output
// before it reaches the host's audio device.
type AudioOptions struct {
	EnableLowPass  bool
	EnableHighPass bool
	EnableSoftClip bool
	EnableDither   bool
}

// AudioPlayer manages audio output for the emulator.
type AudioPlayer struct {
	apu           *apu.APU
	opts          AudioOptions
	audioContext  *audio.Context
	audioPlayer   *audio.Player
	sampleBuffer  []float32
	resampleRatio float64

	// One-pole filter state, per channel (left, right).
	highPassPrevIn  [2]float32
	highPassPrevOut [2]float32
	lowPassPrevOut  [2]float32

	// Dither state, a simple xorshift PRNG seeded at construction.
	ditherState uint32
}

// NewAudioPlayer creates a new audio player.
func NewAudioPlayer(apuInstance *apu.APU, opts AudioOptions) (*AudioPlayer, error) {
	audioContext := audio.NewContext(sampleRate)

	player, err := audioContext.NewPlayer(&infiniteStream{
		player: &AudioPlayer{
			apu:           apuInstance,
			opts:          opts,
			audioContext:  audioContext,
			sampleBuffer:  make([]float32, 0, audioBufferSize),
			resampleRatio: float64(sampleRate) / 4194304.0, // GB CPU frequency
			ditherState:   0x9E3779B9,
		},
	})
	if err != nil {
		return nil, err
	}

	ap := &AudioPlayer{
		apu:           apuInstance,
		opts:          opts,
		audioContext:  audioContext,
		audioPlayer:   player,
		sampleBuffer:  make([]float32, 0, audioBufferSize),
		resampleRatio: float64(sampleRate) / 4194304.0,
		ditherState:   0x9E3779B9,
	}

	return ap, nil
}

// nextDither returns the next triangular-dither value in [-1, 1), formed by
// summing two uniform PRNG draws (TPDF dithering).
func (ap *AudioPlayer) nextDither() float32 {
	next := func() float32 {
		ap.ditherState ^= ap.ditherState << 13
		ap.ditherState ^= ap.ditherState >> 17
		ap.ditherState ^= ap.ditherState << 5
		return float32(ap.ditherState)/float32(math.MaxUint32)*2 - 1
	}
	return (next() + next()) / 2
}

// process applies the configured filters, soft clip, and dither to one
// sample on the given channel (0=left, 1=right), returning the filtered
// value still in the [-1, 1] float domain.
func (ap *AudioPlayer) process(channel int, sample float32) float32 {
	if ap.opts.EnableHighPass {
		out := highPassCutoff * (ap.highPassPrevOut[channel] + sample - ap.highPassPrevIn[channel])
		ap.highPassPrevIn[channel] = sample
		ap.highPassPrevOut[channel] = out
		sample = out
	}

	if ap.opts.EnableLowPass {
		out := ap.lowPassPrevOut[channel] + lowPassCutoff*(sample-ap.lowPassPrevOut[channel])
		ap.lowPassPrevOut[channel] = out
		sample = out
	}

	if ap.opts.EnableSoftClip {
		sample = float32(math.Tanh(float64(sample)))
	} else if sample > 1 {
		sample = 1
	} else if sample < -1 {
		sample = -1
	}

	if ap.opts.EnableDither {
		sample += ap.nextDither() * (ditherAmplitude / 32767.0)
	}

	return sample
}

// Start starts audio playback.
func (ap *AudioPlayer) Start() {
	if ap.audioPlayer != nil {
		ap.audioPlayer.Play()
	}
}

// Stop stops audio playback.
func (ap *AudioPlayer) Stop() {
	if ap.audioPlayer != nil {
		ap.audioPlayer.Pause()
	}
}

// Update updates the audio player with samples from the APU.
func (ap *AudioPlayer) Update() {
	// Get samples from APU
	samples := ap.apu.GetSampleBuffer()
	if len(samples) > 0 {
		ap.sampleBuffer = append(ap.sampleBuffer, samples...)
	}

	// Limit buffer size to prevent unbounded growth
	maxBufferSize := audioBufferSize * 4
	if len(ap.sampleBuffer) > maxBufferSize {
		// Keep only the most recent samples
		ap.sampleBuffer = ap.sampleBuffer[len(ap.sampleBuffer)-maxBufferSize:]
	}
}

// Read reads audio samples for playback (implements io.Reader).
func (ap *AudioPlayer) Read(buf []byte) (int, error) {
	// Convert buffer to samples (2 bytes per sample, stereo)
	numSamples := len(buf) / 4 // 4 bytes per stereo sample (2 channels × 2 bytes)

	if len(ap.sampleBuffer) < numSamples*2 {
		// Not enough samples, return silence
		for i := range buf {
			buf[i] = 0
		}
		return len(buf), nil
	}

	// Convert float32 samples to int16 for audio output
	for i := 0; i < numSamples; i++ {
		// Left channel
		left := ap.process(0, ap.sampleBuffer[i*2])
		leftInt16 := int16(left * 32767.0)
		buf[i*4] = byte(leftInt16)
		buf[i*4+1] = byte(leftInt16 >> 8)

		// Right channel
		right := ap.process(1, ap.sampleBuffer[i*2+1])
		rightInt16 := int16(right * 32767.0)
		buf[i*4+2] = byte(rightInt16)
		buf[i*4+3] = byte(rightInt16 >> 8)
	}

	// Remove consumed samples
	ap.sampleBuffer = ap.sampleBuffer[numSamples*2:]

	return len(buf), nil
}

// infiniteStream wraps AudioPlayer to implement an infinite audio stream.
type infiniteStream struct {
	player *AudioPlayer
}

// Read implements io.Reader for infinite audio streaming.
func (s *infiniteStream) Read(buf []byte) (int, error) {
	return s.player.Read(buf)
}
