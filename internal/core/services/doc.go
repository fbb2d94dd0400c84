// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The ingestion orchestrator loads snapshots through the extractor and
// chunker and writes embedding records; the retriever and answer
// composer serve queries from the same index.
package services
