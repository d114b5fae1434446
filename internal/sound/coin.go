// Package sound synthesizes the coin-clink notification tone and plays it
// through an external audio player.
package sound

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Synthesis parameters. The tone is two high-pitched decaying sinusoids
// (A7 and E8) for the metallic body plus a slightly delayed C8 for the
// second "clink".
const (
	SampleRate = 44100
	duration   = 0.4

	freqA7 = 3520.0
	freqE8 = 5274.0
	freqC8 = 4186.0

	decayRate      = 12.0
	secondHitDelay = 0.07
	secondHitDecay = 14.0

	mixA7        = 0.5
	mixE8        = 0.3
	mixSecondHit = 0.4

	amplitude = 16000
)

// Synthesize generates the coin tone as 16-bit mono samples. The output is
// a pure function of the sample index, so repeated calls are byte-identical.
func Synthesize() []int {
	nSamples := int(SampleRate * duration)
	samples := make([]int, nSamples)

	for i := range samples {
		t := float64(i) / SampleRate
		decay := math.Exp(-t * decayRate)
		tone1 := math.Sin(2 * math.Pi * freqA7 * t)
		tone2 := math.Sin(2 * math.Pi * freqE8 * t)

		var decay2 float64
		if t > secondHitDelay {
			decay2 = math.Exp(-(t - secondHitDelay) * secondHitDecay)
		}
		tone3 := math.Sin(2 * math.Pi * freqC8 * t)

		sample := (tone1*mixA7+tone2*mixE8)*decay + tone3*mixSecondHit*decay2
		samples[i] = int(sample * amplitude)
	}

	return samples
}

// WriteFile encodes the coin tone as a mono 16-bit PCM WAV at path,
// creating parent directories as needed.
func WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create sound directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sound file: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, SampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		Data:           Synthesize(),
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to encode sound: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize sound file: %w", err)
	}

	return f.Close()
}

// EnsureFile generates the coin tone at path if it does not exist yet.
// The cached file is never invalidated or regenerated.
func EnsureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return WriteFile(path)
}
