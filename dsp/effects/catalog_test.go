package effects

import (
	"errors"
	"sort"
	"testing"
)

func TestCatalogConstructsEveryName(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fx, err := New(name)
			if err != nil {
				t.Fatalf("New(%q): %v", name, err)
			}
			if fx.Name() == "" {
				t.Error("display name is empty")
			}
		})
	}
}

func TestCatalogNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != 16 {
		t.Fatalf("catalog has %d names, want 16", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("names not sorted: %v", names)
	}
}

func TestCatalogUnknownName(t *testing.T) {
	for _, name := range []string{"", "Delay", "echo", "reverb "} {
		if _, err := New(name); !errors.Is(err, ErrUnknownEffect) {
			t.Errorf("New(%q) error = %v, want ErrUnknownEffect", name, err)
		}
	}
}

func TestCatalogDisplayNames(t *testing.T) {
	want := map[string]string{
		"auto_wah":     "Auto-Wah",
		"bitcrusher":   "Bitcrusher",
		"chorus":       "Chorus",
		"compression":  "Compression",
		"delay":        "Delay",
		"distortion":   "Distortion",
		"eq":           "EQ",
		"flanger":      "Flanger",
		"gate":         "Gate",
		"limiter":      "Limiter",
		"phaser":       "Phaser",
		"pitch_shift":  "Pitch Shifting",
		"reverb":       "Reverb",
		"time_stretch": "Time Stretching",
		"tremolo":      "Tremolo",
		"vibrato":      "Vibrato",
	}

	for name, display := range want {
		fx, err := New(name)
		if err != nil {
			t.Fatalf("New(%q): %v", name, err)
		}
		if got := fx.Name(); got != display {
			t.Errorf("New(%q).Name() = %q, want %q", name, got, display)
		}
	}
}

func TestCatalogReturnsFreshInstances(t *testing.T) {
	a, err := New("delay")
	if err != nil {
		t.Fatal(err)
	}
	b, err := New("delay")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("New returned the same instance twice")
	}

	if err := a.Configure(Set{"mix": Float(0.9)}); err != nil {
		t.Fatal(err)
	}
	if got, _ := b.Parameters()["mix"].AsFloat(); got == 0.9 {
		t.Fatal("configuring one instance leaked into another")
	}
}
