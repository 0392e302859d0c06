package lexicon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/wordseed/internal/model"
)

// Format selects the document decoder.
type Format int

const (
	// FormatJSON decodes with encoding/json.
	FormatJSON Format = iota
	// FormatYAML decodes with gopkg.in/yaml.v3.
	FormatYAML
)

// FormatFromPath picks the decoder from the file extension.
// .yaml and .yml are YAML; everything else is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFiles reads both documents and builds a validated Catalog.
func LoadFiles(poolPath, lexiconPath string, opts Options) (*Catalog, error) {
	pool, err := LoadPool(poolPath)
	if err != nil {
		return nil, err
	}
	lex, err := LoadLexicon(lexiconPath)
	if err != nil {
		return nil, err
	}
	return NewCatalog(pool, lex, opts)
}

// LoadPool reads and decodes a word pool document.
func LoadPool(path string) (model.WordPool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.WordPool{}, model.NewConfigurationError("lexicon.LoadPool", fmt.Sprintf("reading pool file %s", path), err)
	}
	return DecodePool(data, FormatFromPath(path))
}

// LoadLexicon reads and decodes a lexicon document.
func LoadLexicon(path string) (model.Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Lexicon{}, model.NewConfigurationError("lexicon.LoadLexicon", fmt.Sprintf("reading lexicon file %s", path), err)
	}
	return DecodeLexicon(data, FormatFromPath(path))
}

// DecodePool decodes and shape-checks a word pool document.
func DecodePool(data []byte, format Format) (model.WordPool, error) {
	var pool model.WordPool
	if err := decodeDocument(data, format, defWordPool, &pool); err != nil {
		return model.WordPool{}, model.NewConfigurationError("lexicon.DecodePool", "invalid word pool document", err)
	}
	return pool, nil
}

// DecodeLexicon decodes and shape-checks a lexicon document.
func DecodeLexicon(data []byte, format Format) (model.Lexicon, error) {
	var lex model.Lexicon
	if err := decodeDocument(data, format, defLexicon, &lex); err != nil {
		return model.Lexicon{}, model.NewConfigurationError("lexicon.DecodeLexicon", "invalid lexicon document", err)
	}
	return lex, nil
}

// decodeDocument decodes data twice: once generically for the CUE shape check,
// then strictly into target.
func decodeDocument(data []byte, format Format, def string, target any) error {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	}

	if errs := checkShape(def, raw); len(errs) > 0 {
		return ValidationErrors(errs)
	}

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true) // Reject unknown fields
		if err := dec.Decode(target); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(target); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
	}
	return nil
}
