// Package llvm lowers bound and typed syntax trees into LLVM IR using
// github.com/llir/llvm. One function definition is emitted per function
// item; the body is lowered into a single entry block.
//
// Function types split on the return type: a unit return produces a void
// function, any other return must be a first-class value. Integer constants
// are materialized at their resolved width and re-materialized at the
// declared return width when the value fits.
package llvm
