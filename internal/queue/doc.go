// Package queue persists track requests and their lifecycle in SQLite.
//
// Each queue item is a requested track moving through pending, searching,
// found, downloading, and completed (or failed / no_match when things go
// wrong). The store claims pending work atomically so a single runner can
// resume safely after a crash, and stale in-flight statuses are rolled back
// to pending on startup.
package queue
