// Package normalisers provides implementations of the Normaliser interface.
// Each normaliser knows how to extract per-page text from a specific MIME type.
package normalisers
