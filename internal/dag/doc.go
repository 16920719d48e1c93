// Package dag holds a small, concurrency-safe directed graph of named
// source sets. It is used before anything reaches the relation registry to
// find depends-on cycles in a configuration and report them with the full
// path, something the registry itself never checks.
package dag
