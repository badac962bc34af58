// Package trackstore persists track summaries and detection histories to
// SQLite so replays can be inspected after the fact.
//
// The schema is managed by golang-migrate from migrations embedded in the
// binary. Tracking logic stays in internal/tracking; this package only
// stores TrackSnapshot values.
package trackstore
