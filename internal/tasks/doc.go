// Package tasks runs batches of daemon tasks with real-time progress reporting.
//
// # Batches
//
// [RunBatch] fans a list of [daemon.Task] values out to a bounded worker pool:
//
//  1. Tasks are dispatched in order, each waiting on a shared rate limiter
//  2. Workers execute tasks against the adapter concurrently
//  3. Results are collected in input order, one [daemon.Result] per task
//
// A task that is never dispatched because the context ended still gets a failure result, so
// callers can rely on len(Results) == len(tasks).
//
// # Progress Reporting
//
// Progress updates go out on an optional channel. Sends use select with default so a slow or
// absent reader never blocks the batch.
package tasks
