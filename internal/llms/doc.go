// Package llms flattens the generated per-language documentation into plain
// text exports for language models.
//
// Each language gets a navigation index (llms_{lang}.txt), a complete export
// (llms_{lang}_full.txt) and one file per document under docs_{lang}/. All
// exports are built in memory first; nothing is written when any document of
// any language fails to process.
package llms
