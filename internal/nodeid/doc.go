// internal/nodeid/doc.go

/*
Package nodeid provides the textual identifiers used for source sets and
compilations outside of a running build model: in configuration files, on
the command line and in query requests.

A source-set name is a single segment, e.g. `linuxX64Main`. A compilation
is addressed as `target/compilation`, e.g. `linuxX64/main`.

This package enforces the identifier schema and centralizes all
formatting and parsing logic.
*/
package nodeid
