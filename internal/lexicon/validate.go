package lexicon

import (
	"fmt"
	"strings"

	"github.com/roach88/wordseed/internal/model"
)

// Validation error codes (E200-E299)
const (
	// Document shape (E200)
	ErrSchemaMismatch = "E200" // document does not match the CUE schema

	// WordPool errors (E201-E209)
	ErrPoolVersionEmpty = "E201" // pool version is required
	ErrPoolNoThemes     = "E202" // at least one theme required
	ErrThemeNameEmpty   = "E203" // theme name is required
	ErrThemeNoSlots     = "E204" // theme must have at least one slot
	ErrSlotNoWords      = "E205" // slot must have at least one word
	ErrWordEmpty        = "E206" // words must be non-blank

	// Lexicon errors (E210-E219)
	ErrLexiconVersionEmpty = "E211" // lexicon version is required
	ErrEntryIncomplete     = "E212" // entry needs both slot and cluster
	ErrEntryDuplicate      = "E213" // two keys collapse to one word after NFC

	// Consistency errors (E220-E229)
	ErrWordNotInLexicon = "E220" // pool word has no lexicon entry
	ErrThemeUnusable    = "E221" // theme has zero usable candidates
)

// ValidationError represents a single document validation problem.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors is a list of validation problems reported together.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d validation error(s): %s", len(v), strings.Join(msgs, "; "))
}

// Options controls how strictly pool/lexicon consistency is enforced.
type Options struct {
	// AllowMissingEntries downgrades E220 to a warning. The sampler then skips
	// pool words that have no lexicon entry.
	AllowMissingEntries bool
}

// Validate checks pool and lexicon semantics.
// Returns all errors and warnings found (does not fail-fast).
// Both documents are walked in canonical key order so output is stable.
func Validate(pool model.WordPool, lex model.Lexicon, opts Options) (errs, warnings []ValidationError) {
	if strings.TrimSpace(pool.Version.String()) == "" {
		errs = append(errs, ValidationError{Field: "pool.version", Message: "version is required", Code: ErrPoolVersionEmpty})
	}
	if strings.TrimSpace(lex.Version.String()) == "" {
		errs = append(errs, ValidationError{Field: "lexicon.version", Message: "version is required", Code: ErrLexiconVersionEmpty})
	}

	for _, word := range model.SortedKeys(lex.Mappings) {
		c := lex.Mappings[word]
		if strings.TrimSpace(c.Slot) == "" || strings.TrimSpace(c.Cluster) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("lexicon.mappings.%s", word),
				Message: "entry must have a non-empty slot and cluster",
				Code:    ErrEntryIncomplete,
			})
		}
	}

	if len(pool.Themes) == 0 {
		errs = append(errs, ValidationError{Field: "pool.themes", Message: "at least one theme is required", Code: ErrPoolNoThemes})
		return errs, warnings
	}

	for _, themeKey := range pool.ThemeKeys() {
		theme := pool.Themes[themeKey]
		themePath := fmt.Sprintf("pool.themes.%s", themeKey)

		if strings.TrimSpace(theme.Name) == "" {
			errs = append(errs, ValidationError{Field: themePath + ".name", Message: "theme name is required", Code: ErrThemeNameEmpty})
		}
		if len(theme.Slots) == 0 {
			errs = append(errs, ValidationError{Field: themePath + ".slots", Message: "theme must have at least one slot", Code: ErrThemeNoSlots})
			continue
		}

		words, usable := 0, 0
		for _, slotKey := range theme.SlotKeys() {
			slot := theme.Slots[slotKey]
			slotPath := fmt.Sprintf("%s.slots.%s.words", themePath, slotKey)

			if len(slot.Words) == 0 {
				errs = append(errs, ValidationError{Field: slotPath, Message: "slot must have at least one word", Code: ErrSlotNoWords})
				continue
			}

			for i, word := range slot.Words {
				wordPath := fmt.Sprintf("%s[%d]", slotPath, i)
				if strings.TrimSpace(word) == "" {
					errs = append(errs, ValidationError{Field: wordPath, Message: "word must not be blank", Code: ErrWordEmpty})
					continue
				}
				words++

				c, ok := lex.Lookup(word)
				if !ok {
					missing := ValidationError{
						Field:   wordPath,
						Message: fmt.Sprintf("word %q has no lexicon entry", word),
						Code:    ErrWordNotInLexicon,
					}
					if opts.AllowMissingEntries {
						warnings = append(warnings, missing)
					} else {
						errs = append(errs, missing)
					}
					continue
				}
				if strings.TrimSpace(c.Slot) != "" && strings.TrimSpace(c.Cluster) != "" {
					usable++
				}
			}
		}

		if words > 0 && usable == 0 {
			errs = append(errs, ValidationError{
				Field:   themePath,
				Message: "theme has zero usable candidates after lexicon filtering",
				Code:    ErrThemeUnusable,
			})
		}
	}

	return errs, warnings
}
