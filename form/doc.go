// Package form implements a reactive state container for hierarchical,
// path-addressable form data: field-level change tracking, validation-error
// bookkeeping, and array-valued fields whose positions can be inserted,
// removed, or reordered while preserving per-position interaction state.
//
// # Model
//
// A Form owns one data tree (see package datasource) plus a registry of
// per-path Field records. Paths are the only stable identity for a piece of
// form state: "user.name" addresses a map key, "items.2.sku" addresses a
// key inside the third element of a slice. Fields are created lazily on
// first access and are identity-stable, so a subscriber holding a Field
// keeps receiving updates for its path.
//
// # Flags
//
// Each Field carries four interaction flags:
//
//   - Modified: the value was changed through SetValue
//   - Visited: the field was touched
//   - Validating: a validator call for the field is in flight
//   - WasValidated: the field was explicitly validated at least once
//
// Value and Errors are derived, not stored: Value reads through the data
// tree, Errors reads the validator's cached error map. Both are reactive
// (package signal) and can be observed with signal.NewEffect.
//
// # Array reindexing
//
// Flags describe logical elements, but paths encode positions. After an
// ArrayInsert/ArrayRemove/ArrayMove the registry relocates every affected
// Field's flags to the path the same logical element now occupies, resets
// what stayed behind, prunes entries beyond the new tail, and re-validates
// exactly the relocated fields whose WasValidated flag was set.
//
// # Validation
//
// Validation is delegated to a Validator collaborator (package rules ships
// one). Validator failures are handled fail-open: the error is logged and
// the scope is treated as having no errors, so a broken validator cannot
// wedge a form in a permanently invalid state. Nothing in this package
// panics or returns errors from the operation surface; benign misuse
// (malformed paths, out-of-range indices) is absorbed as a no-op.
//
// # Concurrency
//
// The reactive graph is synchronous and the Form must be confined to a
// single goroutine. The only internal concurrency is the fan-out of
// validator calls during re-validation; all state writes stay on the
// calling goroutine.
package form
