// Package analysis holds the pure metric computations of the ingestion
// pipeline: walking structure trees, normalizing text, scoring industry
// relevance and fingerprinting content.
//
// Nothing in this package performs I/O. Every function is deterministic for
// a given input, which is what makes snapshot checksums comparable across runs.
package analysis
