// Package reading defines the values that flow from a buoy panel capture into
// the persisted ring store.
//
// A panel exposes a closed set of named quantities (wind speed in several
// units, air temperature, wave heights, reading timestamps, ...). Each one is
// identified by a Field. A decoded quantity is a Value, which is exactly one
// of:
//   - a floating-point number
//   - a timezone-aware timestamp
//   - absent (the not-a-number marker)
//
// Values also carry the Outcome of the decode that produced them so callers
// and tests can tell a clean read from a corrected, rejected, or substituted
// one. Outcomes are not persisted.
package reading
