package audiofile

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	wavBitDepth  = 16
	wavPCMFormat = 1
)

// ReadWAV decodes a WAV file into a buffer. Integer frames are normalized
// by the source bit depth, so 16-bit full scale maps to 1/32768 steps.
func ReadWAV(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: open wav: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode %s: %w", path, err)
	}
	if pcm.Format == nil || pcm.Format.SampleRate <= 0 || pcm.Format.NumChannels <= 0 {
		return nil, fmt.Errorf("audiofile: decode %s: missing format", path)
	}

	depth := pcm.SourceBitDepth
	if depth <= 0 {
		depth = wavBitDepth
	}
	scale := 1 / float64(int64(1)<<(depth-1))

	data := make([]float64, len(pcm.Data))
	for i, v := range pcm.Data {
		data[i] = float64(v) * scale
	}

	return audio.FromSamples(data, pcm.Format.SampleRate, pcm.Format.NumChannels), nil
}

// WriteWAV encodes a buffer as 16-bit PCM. Samples are clamped to [-1, 1]
// and scaled by 32767.
func WriteWAV(path string, buf *audio.Buffer) error {
	if err := buf.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: create wav: %w", err)
	}

	enc := wav.NewEncoder(f, buf.SampleRate, wavBitDepth, buf.Channels, wavPCMFormat)

	pcm := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: buf.Channels,
			SampleRate:  buf.SampleRate,
		},
		Data:           make([]int, len(buf.Data)),
		SourceBitDepth: wavBitDepth,
	}
	for i, v := range buf.Data {
		pcm.Data[i] = int(core.Clamp(v, -1, 1) * 32767)
	}

	if err := enc.Write(pcm); err != nil {
		f.Close()
		return fmt.Errorf("audiofile: encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("audiofile: finalize %s: %w", path, err)
	}

	return f.Close()
}
