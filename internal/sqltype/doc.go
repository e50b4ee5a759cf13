// Package sqltype provides the resolved type model used by the window
// function analyzer.
//
// This package contains type definitions only and imports nothing internal.
// Every other internal package may import sqltype.
//
// Key design constraints:
//   - Type is sealed: only *Scalar, *Interval and *Row implement it
//   - Row field order is significant and preserved by Builder
//   - Rows are immutable once built; Builder copies fields on Build
package sqltype
