// Package convert implements the bidirectional mapping between delimited
// text tables and JSON documents.
//
// This package is the heart of the converter, containing all conversion
// logic independent of any CLI or transport layer. It can be used by command
// handlers, web handlers, or tests without modification.
//
// # Data Model
//
// Two in-memory representations meet here:
//
//   - [Table]: ordered rows of string fields, optionally with a designated
//     header row. All values are text at this layer.
//   - [Value]: a closed tagged union over the JSON data model. Objects keep
//     their fields in source order (see [Record]) so that key order is
//     deterministic end to end.
//
// # Pipelines
//
// Each direction is a pure function from one representation to the other,
// sandwiched between stream I/O:
//
//	CSVToJSON: ReadTable → TableToDocument → pretty JSON
//	JSONToCSV: DecodeDocument → DocumentToTable → WriteTable
//
// Conversions run start to finish on the calling goroutine and hold both the
// input and output representations in memory; there is no streaming mode.
//
// # Shape Dispatch
//
// DocumentToTable inspects only the first array element to choose between
// array-of-arrays and array-of-records mode. In records mode the header row
// is the ordered key union across all elements: the first record's keys in
// encountered order, then new keys from later records as they appear.
//
// # Errors
//
// All errors are unrecoverable at the point of detection: the conversion
// aborts immediately and the error propagates to the caller as a single
// descriptive message. The one deliberate exception is records mode, where
// non-object elements contribute no row and are instead counted in [Result].
package convert
