package audiofile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	mp3 "github.com/hajimehoshi/go-mp3"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
)

// go-mp3 always emits 16-bit little-endian stereo PCM.
const mp3Channels = 2

// ReadMP3 decodes an MP3 file into a buffer. The sample rate follows the
// stream header; the channel count is always 2.
func ReadMP3(path string) (*audio.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: open mp3: %w", err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("audiofile: decode %s: %w", path, err)
	}

	var pcm bytes.Buffer
	if n := dec.Length(); n > 0 {
		pcm.Grow(int(n))
	}
	if _, err := pcm.ReadFrom(dec); err != nil {
		return nil, fmt.Errorf("audiofile: decode %s: %w", path, err)
	}

	raw := pcm.Bytes()
	data := make([]float64, len(raw)/2)
	for i := range data {
		data[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768
	}

	return audio.FromSamples(data, dec.SampleRate(), mp3Channels), nil
}
