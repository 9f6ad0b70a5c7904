// Package repositories implements SQLite persistence for tdx.
//
// Key Implementations:
//   - [WebsearchRepository] : websearch settings keyed by their order index
//   - [TaskLogRepository] : journal of executed daemon tasks
//
// Order indexes and journal sequence numbers come from per-table sequence tables, incremented atomically by [NextSequence].
package repositories
