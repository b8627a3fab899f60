// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Watch view with rise/set events, JSON survey export, night boundaries
// 0.2.0 - Altitude traces, visibility windows, Moon sweep
// 0.1.0 - Initial release: survey, classify, Moon phase and separation
