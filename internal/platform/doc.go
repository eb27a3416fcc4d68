package platform

// Package platform contains OS/platform integration and external tooling glue:
// media binary detection, per-user directories, opening folders in the system
// file manager, URL cleanup and playlist URL resolution.
