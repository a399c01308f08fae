// Package uploadform implements the upload form state machine.
//
// All state changes go through Reduce, a pure function from (state, action)
// to state. Form owns one FormState, serialises access to it and drives the
// single side-effecting operation, Submit, which sends the selected document
// and runs the cosmetic progress ticker for exactly as long as the request is
// outstanding.
package uploadform
