// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Prometheus tick metrics, viper config layering, headless JSON snapshots
// 0.2.0 - VSOP87 ephemeris source with mean-element fallback, bright-star backdrop
// 0.1.0 - Initial release: accelerated clock, perspective label projection, inner/outer view switch
