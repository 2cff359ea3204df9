// Package peaks supplies pre-reduced amplitude buffers to the renderer:
// loaded from a JSON peaks file or synthesised for demos.
package peaks

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/ingyamilmolinar/beatmapper/internal/wave"
)

var ErrNonFinite = errors.New("peaks: chunk value is not finite")

// Buffer is the on-disk form of a reduced waveform. Every chunk is one
// amplitude in [-1,1] summarising ChunkSize samples.
type Buffer struct {
	SampleRate float64   `json:"sample_rate"`
	ChunkSize  int       `json:"chunk_size"`
	Chunks     []float32 `json:"chunks"`
}

// Load reads a peaks file. Values outside [-1,1] are clamped.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open peaks: %w", err)
	}
	defer f.Close()

	var b Buffer
	if err := json.NewDecoder(f).Decode(&b); err != nil {
		return nil, fmt.Errorf("decode peaks %s: %w", path, err)
	}
	if err := b.normalize(); err != nil {
		return nil, fmt.Errorf("peaks %s: %w", path, err)
	}
	return &b, nil
}

func (b *Buffer) normalize() error {
	if !(b.SampleRate > 0) || math.IsInf(b.SampleRate, 0) {
		return wave.ErrInvalidSampleRate
	}
	if b.ChunkSize <= 0 {
		return wave.ErrInvalidChunkSize
	}
	for i, v := range b.Chunks {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("chunk %d: %w", i, ErrNonFinite)
		}
		if f > 1 {
			b.Chunks[i] = 1
		} else if f < -1 {
			b.Chunks[i] = -1
		}
	}
	return nil
}

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	return wave.SampleBuffer{SampleRate: b.SampleRate, ChunkSize: b.ChunkSize, Chunks: b.Chunks}.Duration()
}

// Apply hands the buffer to the renderer.
func (b *Buffer) Apply(r *wave.Renderer) error {
	return r.ReplaceSamples(b.SampleRate, b.ChunkSize, b.Chunks)
}

// SynthOptions describes a demo track.
type SynthOptions struct {
	Duration   float64 // seconds
	SampleRate float64
	ChunkSize  int
	BPM        float64
	Offset     float64 // seconds before the first beat
}

// Synth builds a buffer with a decaying pulse on every beat, so the beat
// grid drawn for the same BPM and offset lines up with the waveform.
func Synth(o SynthOptions) (*Buffer, error) {
	b := &Buffer{SampleRate: o.SampleRate, ChunkSize: o.ChunkSize}
	if err := b.normalize(); err != nil {
		return nil, err
	}
	if !(o.Duration > 0) {
		return b, nil
	}
	n := int(math.Ceil(o.Duration * o.SampleRate / float64(o.ChunkSize)))
	b.Chunks = make([]float32, n)

	tpb := 0.0
	if o.BPM > 0 {
		tpb = 60 / o.BPM
	}
	for i := range b.Chunks {
		t := float64(i*o.ChunkSize) / o.SampleRate
		amp := 0.05 * math.Abs(math.Sin(float64(i)*0.37))
		if tpb > 0 && t >= o.Offset {
			since := math.Mod(t-o.Offset, tpb)
			amp += 0.9 * math.Exp(-since*8)
		}
		b.Chunks[i] = float32(math.Min(amp, 1))
	}
	return b, nil
}
