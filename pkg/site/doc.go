// Package site loads the project configuration and wires the content
// source, domain service and builder into one ready-to-use unit. It is
// the composition root used by the CLI; library consumers who want
// finer-grained control can assemble the pieces from the lower-level
// packages directly.
package site
