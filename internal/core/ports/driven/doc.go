// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - AgencyCatalog: Lists agencies and their code references (eCFR admin API)
//   - StructureSource: Fetches title structure trees (eCFR versioner API)
//   - AgencyStore: Agency identity persistence
//   - SnapshotStore: Dated snapshot persistence with upsert-by-key semantics
//   - ScheduleStore: The ingest schedule and its run history
//   - ConfigStore: Raw settings values under dotted keys
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
