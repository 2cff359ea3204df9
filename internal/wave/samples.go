package wave

import (
	"errors"
	"math"
)

var (
	ErrInvalidSampleRate = errors.New("wave: sample rate must be positive")
	ErrInvalidChunkSize  = errors.New("wave: chunk size must be positive")
)

// SampleBuffer is a pre-reduced amplitude buffer: every entry of Chunks
// summarises ChunkSize source samples and is normalised to [-1,1].
type SampleBuffer struct {
	SampleRate float64 // Hz
	ChunkSize  int     // samples per chunk
	Chunks     []float32
}

// Duration returns len(Chunks)*ChunkSize/SampleRate in seconds, or 0 when
// the buffer is empty or malformed.
func (b SampleBuffer) Duration() float64 {
	if b.SampleRate <= 0 || b.ChunkSize <= 0 {
		return 0
	}
	return float64(len(b.Chunks)*b.ChunkSize) / b.SampleRate
}

// Tempo places beat lines every 60/BPM seconds, phase-shifted by Offset
// seconds. Offset may be negative.
type Tempo struct {
	BPM    float64
	Offset float64
}

// TimePerBeat returns the beat period and false when BPM cannot produce a
// grid.
func (t Tempo) TimePerBeat() (float64, bool) {
	if !(t.BPM > 0) || math.IsInf(t.BPM, 0) {
		return 0, false
	}
	return 60 / t.BPM, true
}

// ReplaceSamples swaps in a whole new buffer. The window resets to the full
// duration. Invalid rates or chunk sizes are rejected and leave the current
// buffer untouched.
func (r *Renderer) ReplaceSamples(sampleRate float64, chunkSize int, chunks []float32) error {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return ErrInvalidSampleRate
	}
	if chunkSize <= 0 {
		return ErrInvalidChunkSize
	}
	owned := make([]float32, len(chunks))
	copy(owned, chunks)

	r.buf = SampleBuffer{SampleRate: sampleRate, ChunkSize: chunkSize, Chunks: owned}
	r.duration = r.buf.Duration()
	r.start, r.end = 0, r.duration
	r.dirty = true
	r.logger.Infof("[WAVE] samples replaced: rate=%.0f chunk=%d chunks=%d duration=%.3fs",
		sampleRate, chunkSize, len(owned), r.duration)
	return nil
}

// ReplaceTempo sets the beat grid. A non-positive BPM is kept but disables
// grid drawing.
func (r *Renderer) ReplaceTempo(bpm, offset float64) {
	r.tempo = Tempo{BPM: bpm, Offset: offset}
	r.dirty = true
	if _, ok := r.tempo.TimePerBeat(); !ok {
		r.logger.Warnf("[WAVE] tempo bpm=%.3f cannot produce a grid; grid disabled", bpm)
		return
	}
	r.logger.Infof("[WAVE] tempo replaced: bpm=%.3f offset=%.3fs", bpm, offset)
}

func (r *Renderer) Tempo() Tempo { return r.tempo }

// ChunkCount is the number of reduced points in the buffer.
func (r *Renderer) ChunkCount() int { return len(r.buf.Chunks) }

// chunkAt reports the chunk at index i, or false when i is outside the
// buffer.
func (r *Renderer) chunkAt(i int) (float32, bool) {
	if i < 0 || i >= len(r.buf.Chunks) {
		return 0, false
	}
	return r.buf.Chunks[i], true
}
