// Package squery turns line-oriented text into typed tables and renders them
// back out.
//
// A pipeline has three parts: a [Schema] describing the columns, an [Input]
// producing typed [Row] values, and an [Output] consuming a [Table]:
//
//	schema, err := squery.FromSpec(".name:String .pid:Int .time:Float")
//	in := squery.NewLineReader(squery.NewLineSource(os.Stdin), squery.WithSchema(schema))
//	table := squery.NewStreamingTable(schema, in, false)
//	squery.Render(os.Stdout, squery.TextTable, table)
//
// # Schema Specs
//
// A schema spec lists fields as .name:Type, where Type is Int, Float or
// String, optionally followed by a sort clause:
//
//	.pid:Int .tty:String .time:String sorted:pid
//
// "sort:" and "sorted:" only record the claim; the data is never checked.
// [FromSpec] rejects unknown typenames, unknown sort keys and trailing input
// without returning a partial schema.
//
// # Rows and Values
//
// A [Row] has one [Value] per column, all empty when created with [NewRow].
// Cells are only written through [Set] or [Row.SetValue], which refuse a
// value whose category differs from the column's and leave the row as it was.
//
// # Tables
//
// A table built with [NewStreamingTable] pulls rows from its input as
// [Table.Rows] is iterated. With retain off only the current row is kept.
// [Table.Random] drains whatever is left into memory and from then on the
// table is materialized; there is no way back.
//
// Rows that do not parse are skipped by [LineReader] and counted in its
// [Stats]. An I/O failure ends the table and is reported by [Table.Err];
// a clean end of input is not an error.
//
// # Output
//
// [Dump] drives an [Output] through WriteSchema, Preprocess and WriteRecords,
// stopping at the first stage that fails. [Sink] implements the text formats
// (table, markdown, csv, tsv, json, jsonl, yaml, html, plain and
// go-template); [GridSink] collects a [Grid] for the framed text printer.
//
// Use [ParseFormat] to convert a flag string into a [Format]:
//
//	f, err := squery.ParseFormat(flagValue)
//	squery.Render(os.Stdout, f, table, squery.WithBorder(squery.BorderASCII))
//
// # Rules
//
// A [Registry] maps a program name to a [Rule] file holding the schema,
// separators and lines to skip for that program's output, and [Rule.Open]
// runs the program through an [ExecReader].
//
// # Errors
//
// The package exports sentinel errors for programmatic handling:
//
//   - [ErrInvalidSpec] — malformed schema spec
//   - [ErrTypeMismatch], [ErrColumnRange] — rejected cell writes
//   - [ErrSchemaMismatch] — row appended to a table of another schema
//   - [ErrUnsupportedFormat] — unknown format string
//   - [ErrOutputFailed] — a sink stage failed
//   - [ErrRuleNotFound], [ErrInvalidRule] — rule lookup failures
package squery
