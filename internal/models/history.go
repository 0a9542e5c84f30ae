package models

// HistoryPattern is an aggregated view of how often an exact description
// string was previously assigned to a given category. Patterns are derived
// from the stored transactions on each categorization pass and never mutated
// independently.
type HistoryPattern struct {
	Description string
	Category    string
	Count       int
}
