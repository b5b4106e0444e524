package longestpath_test

import (
	"fmt"

	"github.com/katalvlaran/disjunct/longestpath"
	"github.com/katalvlaran/disjunct/problem"
)

// ExampleEngine shows a push, a hypothetical probe and the exact undo.
func ExampleEngine() {
	e := longestpath.New(3)
	e.AddNode(problem.Node{UB: problem.Unbounded})
	e.AddNode(problem.Node{UB: problem.Unbounded, Coeff: 1})
	e.AddNode(problem.Node{UB: problem.Unbounded, Coeff: 1})

	e.AddFixedEdge(problem.Edge{Src: 0, Tgt: 1, Weight: 4})
	fmt.Println("root objective:", e.Objective())

	changes, ok := e.HypotheticalEdgeLB(problem.Edge{Src: 1, Tgt: 2, Weight: 3})
	fmt.Println("probe:", ok, changes, "objective still", e.Objective())

	e.PushEdge(problem.Edge{Src: 1, Tgt: 2, Weight: 3})
	fmt.Println("pushed:", e.Positions(), e.Objective())
	e.Pop()
	fmt.Println("popped:", e.Positions(), e.Objective())
	// Output:
	// root objective: 4
	// probe: true [{2 7}] objective still 4
	// pushed: [0 4 7] 11
	// popped: [0 4 0] 4
}
