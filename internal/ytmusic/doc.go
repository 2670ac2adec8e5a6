// Package ytmusic implements the catalog search capability against the
// YouTube Music internal search API.
//
// The Client issues youtubei search requests under the engine's three filter
// modes (curated tracks, uploaded videos, unfiltered) and maps the deeply
// nested response payloads into flat search.Candidate records at a single
// parse boundary. Records lacking a video identifier are dropped there, so
// malformed upstream payloads fail predictably in one place.
//
// No authentication is required; the client mimics the public web client
// context. An optional injected cache short-circuits repeated queries.
package ytmusic
