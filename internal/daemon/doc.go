// package daemon defines the task/result protocol every torrent daemon adapter implements.
//
// A [Task] describes one operation (retrieve, pause, add by URL, ...) and an [Adapter] answers it
// with exactly one [Result]. Adapters never panic past [Adapter.ExecuteTask]; failures come back as a
// [FailureResult] carrying a [DaemonError].
//
// The [DummyAdapter] keeps sample data in memory and is used for development and tests.
package daemon
