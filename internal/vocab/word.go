// Package vocab defines the word model and the CSV word-list provider.
package vocab

// Word is a single drillable vocabulary item. The external word list is the
// source of truth: everything else references words by ID and never mutates
// them.
type Word struct {
	ID    string
	Front string // source-language term
	Back  string // translation
}
