// Package errs defines the error kinds the parser runtime surfaces, grounded
// on the wrapping style of nihei9-vartan's error.SpecError: small structs
// that implement error and carry just enough context to format one line.
package errs

import "fmt"

// InvalidDataFileError is returned by datafile.Load when a structural
// invariant of the precompiled grammar tables does not hold. It is fatal;
// no parse pipeline runs against a DataFile that failed to load.
type InvalidDataFileError struct {
	Reason string
}

func (e *InvalidDataFileError) Error() string {
	return fmt.Sprintf("invalid data file: %v", e.Reason)
}

// InputRejectedError is returned when ForwardPass ends in a non-accepting
// state. FirstBadOffset is the smallest input offset at which the forward
// automaton entered the sink state (state 0), or len(input) if it never did
// but still failed to accept.
type InputRejectedError struct {
	FirstBadOffset int
}

func (e *InputRejectedError) Error() string {
	return fmt.Sprintf("input rejected at offset %v", e.FirstBadOffset)
}

// NoParseTreeError is returned by a resolver when BackwardPass succeeded
// (the automaton accepted) but no well-nested path exists through the parse
// graph, e.g. because start/final vertices cannot be paired off.
type NoParseTreeError struct{}

func (e *NoParseTreeError) Error() string {
	return "no well-nested parse tree exists for this edge stream"
}

// AmbiguousResult is not an error. It is attached to a successful
// ParallelResolver outcome to record, informationally, that more than one
// witness path through the stack graph was found. Acceptance is unaffected.
type AmbiguousResult struct {
	WitnessCount int
}

func (a *AmbiguousResult) Error() string {
	return fmt.Sprintf("ambiguous result: %v witness paths found", a.WitnessCount)
}
