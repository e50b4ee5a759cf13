// Package harness runs window function scenarios.
//
// A scenario loads one or more CUE spec directories, optionally builds a
// SQLite catalog from inline DDL, analyzes named queries and checks each
// one against an expectation.
//
// # Scenario Format
//
//	name: tumble_basic
//	description: "TUMBLE appends window columns"
//	specs:
//	  - ../specs
//	case_sensitive: false
//	tables:
//	  - CREATE TABLE Auction (id BIGINT, expires TIMESTAMP)
//	cases:
//	  - query: tumble_bid
//	    expect:
//	      function: TUMBLE
//	      fields: ["bidtime:TIMESTAMP", "window_start:TIMESTAMP", "window_end:TIMESTAMP"]
//	  - query: missing_column
//	    expect:
//	      error: E201
//	      identifier: missing_col
//
// Spec paths are relative to the scenario file. A case with probe: true
// ignores the function name written in the query and resolves the first
// window function that accepts the operands.
//
// # Golden Files
//
// RunWithGolden snapshots every case (positional call, chosen function,
// inferred row type or error code) as JSON under testdata/golden.
// Regenerate with:
//
//	go test ./internal/harness -update
package harness
