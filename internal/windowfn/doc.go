// Package windowfn validates calls to table-valued windowing functions
// (TUMBLE, HOP, SESSION) and infers the row type they produce.
//
// ARCHITECTURE:
//
// Every window function follows the same operand convention:
//
//	FN(TABLE t, DESCRIPTOR(col, ...) [, DESCRIPTOR(...)], INTERVAL ... [, INTERVAL ...])
//
// The shared skeleton is exposed as primitives that each function composes
// in its own CheckOperands:
//
//   - ValidateTableWithDescriptors: operand 0 is a row, the next k operands
//     are descriptors naming columns of that row
//   - ValidateTailingIntervals: every operand from a position on is an interval
//   - ArgumentMustBeScalar: operand 0 is a relation, never a scalar
//   - InferRowType: operand 0's fields plus window_start and window_end
//
// FAILURE MODES:
//
// Shape mismatches are returned as a CheckResult, never as an error, so the
// caller decides what a mismatch means. Check turns a mismatch into a
// *SignatureError for a single known function; Resolve treats it as "try the
// next candidate" during overload resolution.
//
// A descriptor naming a column the relation does not have is always an
// *UnknownIdentifierError. Trying another overload cannot fix a misspelled
// column, so Resolve stops at the first one.
//
// FUNCTIONS:
//
// Function is sealed. The set of window functions is closed: Tumble, Hop and
// Session. Each owns its parameter list and its composition of the
// primitives.
//
// All functions in this package are pure. A Binding may be checked from
// several goroutines as long as nobody mutates the call tree or the
// relation schema it references.
package windowfn
