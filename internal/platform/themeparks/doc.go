// Package themeparks provides a client for the ThemeParks.wiki public API.
//
// The client caches responses with TTLs tuned per endpoint: live wait times
// change minute to minute, park schedules daily, and entity metadata almost
// never. Callers get cached data where fresh enough and a single upstream
// round trip otherwise.
package themeparks
