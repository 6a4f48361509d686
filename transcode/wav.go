// Package transcode persists recordings as 16-bit PCM mono WAV and
// loads them back for re-analysis. The float-to-int16 conversion is
// deterministic so a decoded recording scores identically to the live
// session it came from.
package transcode

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/RyanBlaney/prosodia/logging"
)

const pcmBitDepth = 16

// WriteWAV encodes mono float samples in [-1, 1] as a 16-bit PCM WAV
// file at the given path.
func WriteWAV(path string, samples []float64, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	encoder := wav.NewEncoder(file, sampleRate, pcmBitDepth, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: pcmBitDepth,
		Data:           make([]int, len(samples)),
	}
	for i, s := range samples {
		buf.Data[i] = floatToPCM16(s)
	}

	if err := encoder.Write(buf); err != nil {
		return fmt.Errorf("failed to write PCM data: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}

	logging.Debug("recording written", logging.Fields{
		"path":        path,
		"samples":     len(samples),
		"sample_rate": sampleRate,
	})

	return nil
}

// ReadWAV decodes a WAV file into mono float samples in [-1, 1] and
// returns them with the file's sample rate. Multi-channel files are
// downmixed by averaging.
func ReadWAV(path string) ([]float64, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%s is not a valid WAV file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to decode PCM data: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, 0, fmt.Errorf("%s has no channels", path)
	}

	scale := float64(int(1)<<(buf.SourceBitDepth-1)) - 1
	if buf.SourceBitDepth == 0 {
		scale = 32767.0
	}

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		samples[i] = clampUnit(sum / float64(channels) / scale)
	}

	return samples, int(decoder.SampleRate), nil
}

// floatToPCM16 converts a [-1, 1] sample to int16 range, clamped and
// symmetric around zero.
func floatToPCM16(s float64) int {
	return int(math.Round(clampUnit(s) * 32767.0))
}

func clampUnit(s float64) float64 {
	if s > 1.0 {
		return 1.0
	}
	if s < -1.0 {
		return -1.0
	}
	return s
}
