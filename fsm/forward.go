package fsm

// ForwardResult is the outcome of running the forwards transducer over a
// symbol stream: the per-position state trace plus the acceptance
// verdict and the earliest offset that went to the sink, if any.
type ForwardResult struct {
	// States holds s_0 .. s_n: States[0] == InitialState, and
	// States[i+1] is the transition of States[i] under symbols[i]. Its
	// length is always len(symbols)+1.
	States []int
	// Accepted is forwards[States[n]].Accepts().
	Accepted bool
	// FirstBadOffset is the smallest input offset o such that consuming
	// symbols[o] drove the automaton into SinkState (States[o+1] == 0),
	// or len(symbols) if that never happened. This is an input position,
	// not a States index — they differ by one, since States[0] is always
	// InitialState and can never itself be the sink.
	FirstBadOffset int
}

// RunForward runs the forwards DFA over symbols. The pass never
// short-circuits on reaching the sink state: the trace must be complete
// for BackwardPass to run over it, including the worst case where every
// remaining position is a sink. Apart from recording the first sink
// position, the inner loop is one transition lookup and one assignment.
func RunForward(fwd *Automaton, symbols []int) *ForwardResult {
	n := len(symbols)
	states := make([]int, n+1)
	states[0] = InitialState

	firstBad := n
	sawBad := false
	for i := 0; i < n; i++ {
		states[i+1] = fwd.Next(states[i], symbols[i])
		if !sawBad && states[i+1] == SinkState {
			firstBad = i
			sawBad = true
		}
	}

	return &ForwardResult{
		States:         states,
		Accepted:       fwd.Accepts(states[n]),
		FirstBadOffset: firstBad,
	}
}
