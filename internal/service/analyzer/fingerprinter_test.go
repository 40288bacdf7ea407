package analyzer

import (
	"testing"

	"github.com/rs/zerolog"
)

func newTestFingerprinter(t *testing.T, cfg Config) *Fingerprinter {
	t.Helper()
	f, err := NewFingerprinter(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFingerprinter: %v", err)
	}
	return f
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"word mode", func(c *Config) { c.ShingleMode = ShingleModeWord }, false},
		{"zero shingle size", func(c *Config) { c.ShingleSize = 0 }, true},
		{"negative shingle size", func(c *Config) { c.ShingleSize = -1 }, true},
		{"unknown mode", func(c *Config) { c.ShingleMode = "sentence" }, true},
		{"zero word size in word mode", func(c *Config) {
			c.ShingleMode = ShingleModeWord
			c.WordNGramSize = 0
		}, true},
		{"zero winnowing window when enabled", func(c *Config) {
			c.Winnowing = true
			c.WinnowingWindow = 0
		}, true},
		{"threshold above range", func(c *Config) { c.Threshold = 1.5 }, true},
		{"threshold below range", func(c *Config) { c.Threshold = -0.1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	f := newTestFingerprinter(t, DefaultConfig())

	a := f.Fingerprint("d1", "doc", "The cat sat on the mat.")
	b := f.Fingerprint("d1", "doc", "The cat sat on the mat.")

	if a.NormalizedText != b.NormalizedText {
		t.Error("normalized text differs between identical runs")
	}
	if len(a.Fingerprints) != len(b.Fingerprints) {
		t.Fatalf("fingerprint counts differ: %d vs %d", len(a.Fingerprints), len(b.Fingerprints))
	}
	for v := range a.Fingerprints {
		if _, ok := b.Fingerprints[v]; !ok {
			t.Errorf("fingerprint %d missing from second run", v)
		}
	}
}

func TestFingerprint_EmptyContent(t *testing.T) {
	f := newTestFingerprinter(t, DefaultConfig())
	fp := f.Fingerprint("d1", "empty", "")

	if len(fp.Shingles) != 0 {
		t.Errorf("expected no shingles, got %d", len(fp.Shingles))
	}
	if len(fp.Fingerprints) != 0 {
		t.Errorf("expected empty fingerprint set, got %d", len(fp.Fingerprints))
	}
}

func TestFingerprint_WordMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShingleMode = ShingleModeWord
	cfg.WordNGramSize = 2
	f := newTestFingerprinter(t, cfg)

	fp := f.Fingerprint("d1", "doc", "one two three")
	if fp.ShingleCount != 2 {
		t.Errorf("word shingle count = %d, want 2", fp.ShingleCount)
	}
	if fp.Shingles[0] != "one two" {
		t.Errorf("first shingle = %q, want %q", fp.Shingles[0], "one two")
	}
}

func TestFingerprint_StopWordRemoval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StopWords = true
	f := newTestFingerprinter(t, cfg)

	fp := f.Fingerprint("d1", "doc", "the cat sat on the mat")
	if fp.NormalizedText != "cat sat mat" {
		t.Errorf("normalized text = %q, want %q", fp.NormalizedText, "cat sat mat")
	}
}

func TestFingerprint_WinnowingReducesSet(t *testing.T) {
	content := "a reasonably long passage of text used to exercise the winnowing selection step"

	plain := newTestFingerprinter(t, DefaultConfig())
	cfg := DefaultConfig()
	cfg.Winnowing = true
	winnowed := newTestFingerprinter(t, cfg)

	full := plain.Fingerprint("d1", "doc", content)
	reduced := winnowed.Fingerprint("d1", "doc", content)

	if len(reduced.Fingerprints) == 0 {
		t.Fatal("winnowed fingerprint set is empty")
	}
	if len(reduced.Fingerprints) > len(full.Fingerprints) {
		t.Errorf("winnowed set (%d) larger than full set (%d)",
			len(reduced.Fingerprints), len(full.Fingerprints))
	}
}

func TestNewFingerprinter_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShingleSize = 0
	if _, err := NewFingerprinter(cfg, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid config")
	}
}
