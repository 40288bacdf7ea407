package analyzer

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/simcheck/detection-service/internal/models"
)

const (
	ShingleModeCharacter = "character"
	ShingleModeWord      = "word"
)

// Config describes the fingerprinting pipeline. It is treated as an
// immutable value: each Fingerprint call works from its own snapshot.
type Config struct {
	ShingleSize     int
	ShingleMode     string
	WordNGramSize   int
	Winnowing       bool
	WinnowingWindow int
	StopWords       bool
	Threshold       float64
	HashAlgorithm   string
}

// DefaultConfig returns the documented defaults: character 5-grams, no
// winnowing (window 4 when enabled), no stop-word removal, threshold 0.5.
func DefaultConfig() Config {
	return Config{
		ShingleSize:     5,
		ShingleMode:     ShingleModeCharacter,
		WordNGramSize:   3,
		Winnowing:       false,
		WinnowingWindow: 4,
		StopWords:       false,
		Threshold:       0.5,
		HashAlgorithm:   AlgorithmFNV1a,
	}
}

// Validate rejects configurations that violate the caller contract.
// Non-positive sizes are programming errors, not recoverable conditions.
func (c Config) Validate() error {
	if c.ShingleSize < 1 {
		return fmt.Errorf("shingle size must be >= 1, got %d", c.ShingleSize)
	}
	if c.ShingleMode != ShingleModeCharacter && c.ShingleMode != ShingleModeWord {
		return fmt.Errorf("unknown shingle mode %q", c.ShingleMode)
	}
	if c.ShingleMode == ShingleModeWord && c.WordNGramSize < 1 {
		return fmt.Errorf("word n-gram size must be >= 1, got %d", c.WordNGramSize)
	}
	if c.Winnowing && c.WinnowingWindow < 1 {
		return fmt.Errorf("winnowing window must be >= 1, got %d", c.WinnowingWindow)
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be in [0,1], got %v", c.Threshold)
	}
	return nil
}

// Fingerprinter turns raw document text into fingerprint sets. It holds no
// mutable state and is safe for concurrent use.
type Fingerprinter struct {
	cfg    Config
	hasher *Hasher
	logger zerolog.Logger
}

func NewFingerprinter(cfg Config, logger zerolog.Logger) (*Fingerprinter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detection config: %w", err)
	}

	return &Fingerprinter{
		cfg:    cfg,
		hasher: NewHasher(cfg.HashAlgorithm),
		logger: logger,
	}, nil
}

func (f *Fingerprinter) Config() Config {
	return f.cfg
}

// Fingerprint runs the full pipeline for one document: optional stop-word
// removal, normalization, shingling, hashing, optional winnowing. Identical
// content under an identical configuration always reproduces the same set.
// Text shorter than the shingle window yields an empty set, not an error.
func (f *Fingerprinter) Fingerprint(documentID, documentName, content string) *models.DocumentFingerprint {
	text := content
	if f.cfg.StopWords {
		text = RemoveStopWords(text)
	}

	var shingles []string
	if f.cfg.ShingleMode == ShingleModeWord {
		shingles = WordNGrams(text, f.cfg.WordNGramSize)
	} else {
		shingles = KGrams(text, f.cfg.ShingleSize)
	}

	var set map[uint32]struct{}
	if f.cfg.Winnowing {
		set = f.hasher.WinnowingFingerprints(shingles, f.cfg.WinnowingWindow)
	} else {
		set = f.hasher.Fingerprints(shingles)
	}

	f.logger.Debug().
		Str("document_id", documentID).
		Int("shingle_count", len(shingles)).
		Int("fingerprint_count", len(set)).
		Bool("winnowing", f.cfg.Winnowing).
		Msg("Document fingerprinted")

	return &models.DocumentFingerprint{
		DocumentID:       documentID,
		DocumentName:     documentName,
		NormalizedText:   Normalize(text),
		Shingles:         shingles,
		Fingerprints:     set,
		ShingleCount:     len(shingles),
		FingerprintCount: len(set),
	}
}
