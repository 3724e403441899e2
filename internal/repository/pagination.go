package repository

// Page represents a simple limit/offset window for fetch operations.
// I keep it intentionally small; iteration policy belongs to higher layers.
type Page struct {
	Limit  int
	Offset int
}
