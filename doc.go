/*
Package ckv encodes and decodes the three keyed-value text dialects used by
old game configuration data.

The Map dialect holds a single "key value" pair whose value may be a brace
block of further string/value pairs. Map documents may pull in other files
with #"path" references. The Brace dialect holds key=value lines with nested
{} and [] containers and an optional = separator. The Typed-array dialect
holds "key" "type" [payload] triples where every scalar is a quoted string.

All decoders build the same dynamic tree (Node), so documents can be
converted between dialects. Decoding is strict: the first error aborts the
call. Encoding reproduces the reference layouts byte for byte, including
their tab indentation.
*/
package ckv // import "github.com/d1ced/kvparser_ckv"
