package audiofile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/audio"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestReadDispatchesByExtension(t *testing.T) {
	// Extension matching is case-insensitive.
	path := filepath.Join(t.TempDir(), "tone.WAV")
	in := audio.FromSamples(testutil.DeterministicSine(440, 44100, 0.5, 441), 44100, 1)
	if err := WriteWAV(path, in); err != nil {
		t.Fatalf("WriteWAV: %v", err)
	}

	out, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if out.SampleRate != 44100 || out.Channels != 1 || out.Len() != 441 {
		t.Errorf("unexpected buffer: %d Hz / %d ch / %d samples",
			out.SampleRate, out.Channels, out.Len())
	}
}

func TestReadUnsupportedFormat(t *testing.T) {
	for _, name := range []string{"x.flac", "x.ogg", "noext"} {
		_, err := Read(filepath.Join(t.TempDir(), name))
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Read(%q) error = %v, want ErrUnsupportedFormat", name, err)
		}
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	buf := audio.FromSamples([]float64{0}, 44100, 1)

	err := Write(filepath.Join(t.TempDir(), "out.mp3"), buf)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Write(.mp3) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestWriteDispatchesWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	buf := audio.FromSamples(testutil.DC(0.25, 100), 22050, 1)

	if err := Write(path, buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out.Data, buf.Data, 2.0/32768)
}

func TestReadMP3RejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mp3")
	if err := os.WriteFile(path, []byte("certainly not mpeg audio"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Read(path); err == nil {
		t.Error("Read succeeded on garbage mp3")
	}

	if _, err := ReadMP3(filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("ReadMP3 succeeded on a missing file")
	}
}
