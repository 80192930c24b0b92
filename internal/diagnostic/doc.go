// Package diagnostic provides the structured warnings and errors reported
// while documenting models.
//
// Key capabilities:
//   - Codes for every failure kind the engine can report
//   - Per-model failures usable with errors.As
//   - A concurrency-safe, append-only log shared by parallel workers
//   - Replay of the collected log through a structured logger
package diagnostic
