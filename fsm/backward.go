package fsm

// RunBackward runs the backwards DFA right-to-left over the forward-state
// trace. Given states[0..n] from RunForward, it computes
// b_n = InitialState and b_{i-1} = backwards[b_i].transitions[states[i]]
// for i = n, n-1, ..., 1, then returns b_0 .. b_n in left-to-right order so
// edgeIDs[i] lines up with input offset i (edgeIDs[n] is the terminal
// edge-set; len(edge_ids) == len(input)+1 always holds).
//
// Like RunForward, this loop never short-circuits: the backward automaton
// must see the whole forward-state trace, including any SinkState entries,
// because edge-set IDs are still needed at rejected positions too.
func RunBackward(bwd *Automaton, forwardStates []int) []int {
	n := len(forwardStates) - 1
	edgeIDs := make([]int, n+1)

	b := InitialState
	edgeIDs[n] = b
	for i := n; i >= 1; i-- {
		b = bwd.Next(b, forwardStates[i])
		edgeIDs[i-1] = b
	}

	return edgeIDs
}
