// Package testcatalog builds catalogs for tests. Only _test.go files import it.
package testcatalog

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/wordseed/internal/lexicon"
	"github.com/roach88/wordseed/internal/model"
)

// ZeroSecret is 32 zero bytes in hex, the secret used by the reference scenarios.
const ZeroSecret = "0000000000000000000000000000000000000000000000000000000000000000"

// RepoRoot returns the repository root, located relative to this file.
func RepoRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..")
}

// DataPath returns the path of a file in the shipped data directory.
func DataPath(name string) string {
	return filepath.Join(RepoRoot(), "data", name)
}

// ShippedCatalog loads data/pools.json and data/lexicon.json.
func ShippedCatalog(t testing.TB) *lexicon.Catalog {
	t.Helper()
	cat, err := lexicon.LoadFiles(DataPath("pools.json"), DataPath("lexicon.json"), lexicon.Options{})
	require.NoError(t, err)
	return cat
}

// SmallDocs returns a compact two-theme pool and its lexicon.
//
// Theme "garden" has 3 slots, 7 words and 5 distinct clusters.
// Theme "kitchen" has 1 slot, 2 words and 1 cluster.
func SmallDocs() (model.WordPool, model.Lexicon) {
	pool := model.WordPool{
		Version: "test-1",
		Themes: map[string]model.Theme{
			"garden": {
				Name: "Garden",
				Slots: map[string]model.Slot{
					"subject": {Words: []string{"rose", "tulip", "bee"}},
					"action":  {Words: []string{"bloom", "flower", "buzz"}},
					"mood":    {Words: []string{"sunny"}},
				},
			},
			"kitchen": {
				Name: "Kitchen",
				Slots: map[string]model.Slot{
					"subject": {Words: []string{"pot", "pan"}},
				},
			},
		},
	}
	lex := model.Lexicon{
		Version: "test-1",
		Mappings: map[string]model.Classification{
			"rose":   {Slot: "subject", Cluster: "flower"},
			"tulip":  {Slot: "subject", Cluster: "flower"},
			"bee":    {Slot: "subject", Cluster: "insect"},
			"bloom":  {Slot: "action", Cluster: "bloom"},
			"flower": {Slot: "action", Cluster: "bloom"},
			"buzz":   {Slot: "action", Cluster: "buzz"},
			"sunny":  {Slot: "mood", Cluster: "bright"},
			"pot":    {Slot: "subject", Cluster: "cookware"},
			"pan":    {Slot: "subject", Cluster: "cookware"},
		},
	}
	return pool, lex
}

// SmallCatalog builds a Catalog from SmallDocs.
func SmallCatalog(t testing.TB) *lexicon.Catalog {
	t.Helper()
	pool, lex := SmallDocs()
	cat, err := lexicon.NewCatalog(pool, lex, lexicon.Options{})
	require.NoError(t, err)
	return cat
}
