// Package types defines the entity structs, preference configuration, and
// standard errors shared between the Unitracker storage layer and its callers.
package types
