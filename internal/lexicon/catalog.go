package lexicon

import (
	"fmt"
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/wordseed/internal/model"
)

// Catalog is the validated, immutable pool and lexicon pair.
//
// A Catalog owns private copies of its documents; callers cannot mutate it
// after construction, so it is safe for concurrent use without locks.
type Catalog struct {
	pool        model.WordPool
	lexicon     model.Lexicon
	themeKeys   []string
	fingerprint string
	warnings    []ValidationError
}

// NewCatalog normalizes and validates the documents.
// Returns a model.KindConfiguration error wrapping ValidationErrors when any
// rule fails.
func NewCatalog(pool model.WordPool, lex model.Lexicon, opts Options) (*Catalog, error) {
	pool = normalizePool(pool)
	lex, dupes := normalizeLexicon(lex)

	errs, warnings := Validate(pool, lex, opts)
	errs = append(dupes, errs...)
	if len(errs) > 0 {
		return nil, model.NewConfigurationError("lexicon.NewCatalog", "word pool and lexicon failed validation", ValidationErrors(errs))
	}

	fp, err := model.PoolFingerprint(pool)
	if err != nil {
		return nil, model.NewConfigurationError("lexicon.NewCatalog", "fingerprinting pool", err)
	}

	return &Catalog{
		pool:        pool,
		lexicon:     lex,
		themeKeys:   pool.ThemeKeys(),
		fingerprint: fp,
		warnings:    warnings,
	}, nil
}

// Version returns the pool document's version tag.
func (c *Catalog) Version() string {
	return c.pool.Version.String()
}

// LexiconVersion returns the lexicon document's version tag.
func (c *Catalog) LexiconVersion() string {
	return c.lexicon.Version.String()
}

// ThemeKeys returns theme keys in canonical order.
func (c *Catalog) ThemeKeys() []string {
	return slices.Clone(c.themeKeys)
}

// Theme returns the theme for key.
func (c *Catalog) Theme(key string) (model.Theme, bool) {
	t, ok := c.pool.Themes[key]
	return t, ok
}

// Lexicon returns the lexicon. The returned maps must not be mutated.
func (c *Catalog) Lexicon() model.Lexicon {
	return c.lexicon
}

// Fingerprint identifies the pool version and theme key set.
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

// Warnings returns the non-fatal problems found at load time.
func (c *Catalog) Warnings() []ValidationError {
	return slices.Clone(c.warnings)
}

// normalizePool deep-copies the pool, NFC normalizing every word.
func normalizePool(pool model.WordPool) model.WordPool {
	out := model.WordPool{
		Version: pool.Version,
		Themes:  make(map[string]model.Theme, len(pool.Themes)),
	}
	for key, theme := range pool.Themes {
		slots := make(map[string]model.Slot, len(theme.Slots))
		for slotKey, slot := range theme.Slots {
			words := make([]string, len(slot.Words))
			for i, w := range slot.Words {
				words[i] = norm.NFC.String(w)
			}
			slots[slotKey] = model.Slot{Words: words}
		}
		out.Themes[key] = model.Theme{Name: theme.Name, Slots: slots}
	}
	return out
}

// normalizeLexicon deep-copies the lexicon, NFC normalizing every key.
// Two keys that collapse to the same word are reported as E213.
func normalizeLexicon(lex model.Lexicon) (model.Lexicon, []ValidationError) {
	out := model.Lexicon{
		Version:  lex.Version,
		Mappings: make(map[string]model.Classification, len(lex.Mappings)),
	}
	var errs []ValidationError
	for _, word := range model.SortedKeys(lex.Mappings) {
		key := norm.NFC.String(word)
		if _, exists := out.Mappings[key]; exists {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("lexicon.mappings.%s", word),
				Message: fmt.Sprintf("duplicates entry %q after NFC normalization", key),
				Code:    ErrEntryDuplicate,
			})
			continue
		}
		out.Mappings[key] = lex.Mappings[word]
	}
	return out, errs
}
