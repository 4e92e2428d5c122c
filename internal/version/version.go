// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - HEALPix union coverage, .env configuration, burst markers on the sky map
// 0.2.0 - Bubble Tea catalog browser and equirectangular sky map, GRB simulation
// 0.1.0 - Initial release: catalog loader, ellipse containment, headless summary
