// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - EmbeddingService: maps text to fixed-dimension vectors. The same
//     service instance (model and version) must serve both ingestion and
//     query paths; mixing models silently degrades relevance.
//   - VectorIndex: persists embedding records and answers top-k similarity
//     queries. It is the only durable state the system has.
//   - LLMService: generates answer text from a grounded prompt.
//   - PromptStore: provides the grounding system prompt.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
