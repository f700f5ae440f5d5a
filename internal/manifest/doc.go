// Package manifest reads the duplicate manifest produced by an upstream
// hashing tool and groups its entries by content hash.
//
// Each manifest line has the form `<hash> (<path>)`, where the hash is one or
// more word characters and the path runs to the final closing parenthesis at
// the end of the line. Parsing is strict: the first malformed line aborts the
// whole read so no entry is silently dropped.
package manifest
