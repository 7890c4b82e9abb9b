// Package testkit holds helpers shared by package tests: span invariants for
// parsed trees and Markdown golden cases.
//
// A case file looks like
//
//	## Test: identity
//
//	```ramen
//	func identity(a: int32): int32 => 15
//	```
//
//	```llvm
//	define i32 @identity(i32 %a) {
//	```
package testkit
