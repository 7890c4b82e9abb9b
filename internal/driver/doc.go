// Package driver wires the compiler passes together: it loads a source
// file, parses it, runs binding, type resolution and lowering on one
// Session, and collects diagnostics, phase timings and the LLVM module.
package driver
