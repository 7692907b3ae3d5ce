// Package errors defines error types for the mms SDK.
//
// The types classify every failure of a protocol round trip: stream faults,
// arguments that cannot be put on the wire, responses that do not match the
// expected grammar, and explicit rejections by the simulator. All error types
// support unwrapping and can be checked using errors.Is, errors.As, and
// errors.AsType.
package errors
