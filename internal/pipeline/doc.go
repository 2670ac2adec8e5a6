// Package pipeline drains the request queue: it claims pending track
// requests, runs the multi-pass catalog search for each, and hands matches to
// the downloader. Each item's outcome is persisted back to the queue store so
// progress survives restarts.
package pipeline
