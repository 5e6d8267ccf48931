// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Band filter keys, selection connector + info panel, CSV export
// 0.2.0 - Gaia TAP fetcher, live catalog file reload, headless summary mode
// 0.1.0 - Initial release: orbit camera TUI, photometric classification
