package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	BackendXLSX   = "xlsx"
	BackendSQLite = "sqlite"
)

// Opener resolves and opens the store backing a game. Games without an
// explicit store file share a deterministic naming scheme under the data
// directory, so repeated runs always land on the same file.
type Opener struct {
	backend string
	dataDir string
	loc     *time.Location
}

func NewOpener(backend, dataDir string, loc *time.Location) *Opener {
	return &Opener{backend: backend, dataDir: dataDir, loc: loc}
}

func (o *Opener) Open(gameTitle, storeFile string) (Store, error) {
	if err := os.MkdirAll(o.dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	path := o.Path(gameTitle, storeFile)

	switch o.backend {
	case BackendSQLite:
		return OpenSQLiteStore(path, o.loc)
	case BackendXLSX:
		return OpenXLSXStore(path, o.loc)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", o.backend)
	}
}

// Path returns the file backing a game's store: the configured store file
// when set, otherwise the slug fallback plus the backend extension.
func (o *Opener) Path(gameTitle, storeFile string) string {
	if storeFile == "" {
		storeFile = Slug(gameTitle) + o.ext()
	}
	return filepath.Join(o.dataDir, storeFile)
}

func (o *Opener) ext() string {
	if o.backend == BackendSQLite {
		return ".db"
	}
	return ".xlsx"
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slug derives a filesystem-safe name from a game title: diacritics folded,
// lowercased, runs of non-alphanumeric characters collapsed to underscores.
func Slug(name string) string {
	if folded, _, err := transform.String(foldTransformer, name); err == nil {
		name = folded
	}

	name = strings.ToLower(name)

	var b strings.Builder
	lastUnderscore := true // suppress a leading underscore
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	return strings.TrimSuffix(b.String(), "_")
}
