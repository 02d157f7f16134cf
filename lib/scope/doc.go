// Package scope resolves where a declared setting lives in a settings
// document. Application scoped settings are never persisted; user scoped
// settings go to the roaming branch if they are declared roaming (or the
// AllRoaming override is set) and to the branch of the local machine
// ("PC_<machine>") otherwise.
//
// A Resolver does no I/O after construction and is safe for concurrent use.
package scope
