// Package sema holds the two front passes that run before lowering: name
// binding and type resolution. Both walk the same immutable tree through
// the visit framework and write their results into the session.
package sema
