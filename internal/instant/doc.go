// Package instant implements the timestamp engine: exact epoch instants,
// day arithmetic, and re-rendering.
//
// An Instant is an arbitrary-precision count of epoch seconds plus a
// nanosecond component kept in [0, 999_999_999]. No value ever passes
// through float64, so adding days to dates far from 1970 never drifts.
//
// The engine accepts a date in several encodings (see DateInput). The
// encoding is decided once, at the boundary, by DateInputFrom; parsing then
// dispatches on the concrete variant:
//
//	in, err := instant.DateInputFrom(ir.IRString("2025-08-17T00:00:00Z"))
//	res, err := instant.Pipeline(in, ir.IRInt(5), true)
//	// res.DateYMD == "2025-08-22"
//
// Every function in this package is pure and safe for concurrent use.
package instant
