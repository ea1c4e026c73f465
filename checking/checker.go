package checking

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"lazymc/analysis"
	"lazymc/arg"
	"lazymc/lazy"
	"lazymc/stats"
)

// CheckerResponse is a response returned by a check
//
// Contains the result of checking the system.
type CheckerResponse interface {
	// Create a response.
	//
	// Returns a boolean that is true if no error state is reachable, false otherwise.
	// Returns a string describing the response.
	// If an error state is reachable it includes the path of the ARG that reaches it.
	Response() (bool, string)

	// Export the counterexample
	//
	// If an error state is reachable it will return a slice containing the actions along the path to it.
	// Otherwise it will return an empty slice.
	Export() []string

	// The statistics collected while checking
	Statistics() stats.Statistics
}

// A step of a counterexample. The action is empty for the initial state.
type Step struct {
	Action string
	State  string
}

type reachabilityResponse struct {
	Result   bool   // True if no target is reachable. False otherwise
	Sequence []Step // The steps leading to the target. nil if Result is true
	stats    stats.Statistics
}

// Create the response for the result of checking the ARG
func NewResponse[S analysis.State, Act any](g *arg.ARG[S, Act], result lazy.Result) CheckerResponse {
	if result.IsSafe() {
		return reachabilityResponse{Result: true, stats: result.Statistics}
	}
	path := g.Path(result.Target)
	sequence := make([]Step, 0, len(path)+1)
	if len(path) == 0 {
		sequence = append(sequence, Step{State: fmt.Sprint(g.Node(result.Target).State())})
	} else {
		sequence = append(sequence, Step{State: fmt.Sprint(g.Node(path[0].Source).State())})
	}
	for _, e := range path {
		sequence = append(sequence, Step{
			Action: fmt.Sprint(e.Action),
			State:  fmt.Sprint(g.Node(e.Target).State()),
		})
	}
	return reachabilityResponse{Result: false, Sequence: sequence, stats: result.Statistics}
}

// Generate a response
// Returns two parameters, result, and description.
// Result is true if no target is reachable, false otherwise.
// Description is a formatted string providing a detailed description of the result.
// If result is false the description contain the sequence of states that lead to the target
func (rr reachabilityResponse) Response() (bool, string) {
	if rr.Result {
		return rr.Result, "No error state is reachable"
	}
	var buffer bytes.Buffer
	wrt := tabwriter.NewWriter(&buffer, 4, 4, 0, ' ', 0)
	out := "Error state reachable. Sequence: \n"
	for _, step := range rr.Sequence {
		if step.Action == "" {
			fmt.Fprintf(wrt, "\t%v \n", step.State)
			continue
		}
		fmt.Fprintf(wrt, "-%v->\t%v \n", step.Action, step.State)
	}
	wrt.Flush()
	out += buffer.String()
	return rr.Result, out
}

// Export the actions of the counterexample
func (rr reachabilityResponse) Export() []string {
	actions := []string{}
	for _, step := range rr.Sequence {
		if step.Action != "" {
			actions = append(actions, step.Action)
		}
	}
	return actions
}

func (rr reachabilityResponse) Statistics() stats.Statistics {
	return rr.stats
}
