package codegen

import "errors"

// ErrCorruptState is returned when a persisted state blob is structurally
// invalid: wrong framing, a cursor outside its section range, or section
// accounting that no sequence of draws could have produced. States carrying
// this error are never repaired automatically; the caller must restore or
// recreate the state explicitly.
var ErrCorruptState = errors.New("corrupt generator state")

// ErrConfigMismatch is returned when a loaded state was created with domain
// parameters different from the configured ones. Resizing the domain of an
// existing state is not supported.
var ErrConfigMismatch = errors.New("state parameters mismatch configuration")

// ErrExhaustedSelection is returned by State.Next when no section is
// eligible for selection even though the cycle is not complete. A valid
// state can never reach this condition, so it always indicates a logic bug
// or in-memory corruption.
var ErrExhaustedSelection = errors.New("no eligible section mid-cycle")
