// Package scan enumerates conversion inputs and derives output paths.
//
// Enumeration is a single glob over the input directory, matching on the
// exact input extension. Output names are a literal suffix substitution on
// the input base name. The package never touches file contents and never
// creates anything.
package scan
