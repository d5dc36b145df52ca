// Package vktor is an incremental, pull-style JSON tokenizer.
//
// Unlike a tree parser that consumes a whole document and returns a DOM,
// vktor hands back JSON one token at a time and never requires the full
// input to be resident. Callers feed it byte chunks as they arrive (from a
// socket, a file, memory — anything) with Feed, and pull tokens one at a
// time with Parse. Parse never blocks: when the current token can't be
// completed with the bytes fed so far, it returns StatusNeedMore and
// expects the caller to Feed more and call it again.
//
// This is a port of the parsing core of shevron/ext-jsonreader's libvktor,
// a C JSON pull-parser. The host bindings (PHP object wrapping, exception
// mapping) are out of scope; this package exposes the same pull contract
// through idiomatic Go types and methods instead.
package vktor
