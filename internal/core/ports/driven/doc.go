// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SourceStore, ChunkStore, KeywordStore, JunctionStore, SummaryStore: Knowledge persistence
//   - Normaliser: Extracts per-page text from a document
//   - PostProcessor: Splits page text into chunks
//   - TermExtractor: Ranks proper nouns and noun phrases
//   - Tagger: Linguistic analysis (part-of-speech, noun phrases, entities)
//   - ConfigStore: Application configuration
//   - PromptStore: LLM prompt templates
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model operations. Without it, summaries carry an error payload.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, extractor, or normaliser package
package driven
