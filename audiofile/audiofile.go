// Package audiofile reads and writes audio containers as sample buffers.
//
// WAV files decode and encode through go-audio; MP3 files decode through
// go-mp3 (decode only). Samples are normalized to [-1, 1] float64 on the
// way in and scaled back to 16-bit PCM on the way out.
package audiofile

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
)

// ErrUnsupportedFormat is returned for file extensions no codec handles.
var ErrUnsupportedFormat = errors.New("audiofile: unsupported format")

// Read decodes a file based on its extension (.wav or .mp3).
func Read(path string) (*audio.Buffer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return ReadWAV(path)
	case ".mp3":
		return ReadMP3(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Write encodes a buffer based on the file extension. Only .wav output is
// supported; there is no MP3 encoder.
func Write(path string, buf *audio.Buffer) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return WriteWAV(path, buf)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
