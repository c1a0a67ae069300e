// Package services implements the driving port interfaces.
//
// Ingest runs the pipeline once per PDF: page extraction, chunking, term
// extraction, then persistence and linkage. The read side (graph, summary,
// export) works only from what ingest stored. Storage, NLP and model
// access are reached only through driven ports.
package services
