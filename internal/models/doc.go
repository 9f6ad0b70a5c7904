// Package models defines the domain entities shared by every torrent daemon adapter.
//
// The package contains four groups of types:
//
// 1. Transfer state reported by a daemon
//   - [Torrent] : a single torrent with its status, rates, peers and progress
//   - [TorrentFile] : one file inside a torrent with its download priority
//   - [Label] : a label (category) with the number of torrents carrying it
//   - [TorrentDetails] : tracker URLs and tracker/daemon errors for a torrent
//   - [Stats] : daemon-wide state such as the alternative speed mode
//
// 2. Connection settings
//   - [Daemon] : the backend kind an adapter speaks to (Transmission, Deluge, ...)
//   - [DaemonSettings] : the configuration an adapter was built with
//
// 3. User preferences
//   - [WebsearchSetting] : a search site template opened in the browser
//
// 4. History
//   - [TaskRecord] : one journaled task execution with its outcome and duration
//
// Torrents and files carry Mimic* mutators. Adapters without a live server (the dummy adapter)
// use them to reflect a requested state change in place.
package models
