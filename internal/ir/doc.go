// Package ir provides the canonical value representation shared by dayshift.
//
// Request inputs arrive as JSON, YAML, form values, or CLI flags. They are
// decoded once into the sealed IRValue union and every later stage works on
// that union instead of on `any`.
//
// Key design constraints:
//   - NO float64 anywhere - numbers keep their literal text (IRNumber) or
//     fit int64 (IRInt)
//   - JSON null is preserved as IRNull so "absent" and "null" stay distinct
//   - All JSON tags use snake_case
//   - Journal identity uses RFC 8785 canonical JSON (see canonical.go)
package ir
