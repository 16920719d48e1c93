/*
Package handle provides opaque, identity-based identifiers for source sets
and compilations.

A handle is a small integer issued by an Arena. Equality and hashing are
defined by the handle value alone, never by the display name, so two
arenas can hand out the same name without their handles being confused
inside one registry. The zero value of every handle type is invalid.

The Arena is the only place where names live. Everything below it (the
relation store) works on handles; everything above it (the build model,
the CLI, the query server) translates names to handles at the boundary.
*/
package handle
