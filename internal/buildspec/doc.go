// Package buildspec loads declarative animation build specifications and
// normalizes them into an ordered, fully-resolved frame sequence.
//
// A spec file names the animation, its loop count and playback flags, and an
// ordered list of frame declarations. A declaration is either a literal image
// path or a wildcard pattern expanding to many files, and may carry timing
// inline or receive it positionally from a separate delays list. Load picks a
// format-specific builder by file extension (.json selects the JSON builder,
// anything else the XML builder), resolves every declaration against the spec
// file's own directory, and returns an immutable Document.
//
// Malformed delay tokens and optional fields degrade to defaults rather than
// failing; only unreadable documents and missing required structure (the
// frames list, and for JSON the delays list) abort a load.
package buildspec
