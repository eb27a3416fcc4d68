package model

// Package model defines domain data structures shared by both shells: download
// requests and their mode, progress events, history records, extraction
// results, the per-request state machine and the error taxonomy.
