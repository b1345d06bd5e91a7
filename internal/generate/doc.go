// Package generate turns templates into per-language documentation trees.
//
// A generation pass merges every template for every configured language,
// copies sidebar category files, writes each language's root category and
// removes generated files the pass did not produce. Watcher repeats the
// relevant part of a pass when templates or fragments change.
package generate
