// Package server exposes one torrent daemon over HTTP so scripts and Prometheus can reach it
// without the CLI.
//
// Routes:
//
//	GET  /torrents                  torrents and labels as JSON
//	GET  /torrents/{hash}           a single torrent
//	POST /torrents/{hash}/{action}  pause, resume, start, stop, remove or recheck
//	GET  /metrics                   task counters and durations (Prometheus text format)
//	GET  /healthz                   daemon name and type
//
// Every action runs as a daemon task. A failed task answers with its [daemon.DaemonError] as
// {"error", "type"}: 404 for an unknown hash, 501 for a method the backend rejects and 502 otherwise.
//
// [BasicRouter] registers [Handler] values by their method patterns and wraps them in [Middleware],
// outermost first. [Serve] stops accepting connections when its context ends.
package server
