package lexicon

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

// CUE definitions checked by checkShape.
const (
	defWordPool = "#WordPool"
	defLexicon  = "#Lexicon"
)

// checkShape unifies a generically decoded document with a schema definition.
// Returns one ValidationError (E200) per CUE error.
//
// A fresh cue.Context is used per call; contexts are not safe for concurrent
// use and loading only happens at startup.
func checkShape(def string, doc any) []ValidationError {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []ValidationError{{Field: "schema", Message: fmt.Sprintf("compiling schema: %v", err), Code: ErrSchemaMismatch}}
	}

	definition := schema.LookupPath(cue.ParsePath(def))
	if !definition.Exists() {
		return []ValidationError{{Field: "schema", Message: fmt.Sprintf("definition %s not found", def), Code: ErrSchemaMismatch}}
	}

	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return []ValidationError{{Field: "document", Message: fmt.Sprintf("encoding document: %v", err), Code: ErrSchemaMismatch}}
	}

	err := definition.Unify(value).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs []ValidationError
	for _, e := range cueerrors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "document"
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: e.Error(),
			Code:    ErrSchemaMismatch,
		})
	}
	return errs
}
