// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI drives any [daemon.Adapter] through a small set of views:
//  1. [TorrentListView] : Browse torrents and act on the selected one
//  2. [FileListView] : Inspect the files of a torrent
//  3. [ConfirmRemoveView] : Confirm removal of a torrent
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Every action is a daemon task sent through ExecuteTask from a [tea.Cmd], so the event loop never blocks on the daemon.
// Failed tasks are reported in the status line and never leave the TUI.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
