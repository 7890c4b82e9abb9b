// Package project loads compiler configuration from ramen.toml or
// ramen.yaml found next to, or above, the sources.
package project
