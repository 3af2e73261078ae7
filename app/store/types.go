package store

// SheetName is the single sheet every xlsx store carries.
const SheetName = "Results"

// Header is the canonical column set, in canonical order. Stores created or
// repaired by this package always persist exactly these columns.
var Header = []string{"Date", "Game", "Phase", "Result", "InsertedAt"}

// Record is one persisted result row. Rows are append-only; InsertedAt is the
// timezone-local timestamp at the moment of write.
type Record struct {
	Date       string
	Game       string
	Phase      string
	Result     string
	InsertedAt string
}

// Key builds the deduplication identity for a record. No two persisted rows
// may share an identity key.
func Key(game, phase string) string {
	return game + "__" + phase
}
