package graph

// PostOrderVisitor builds a dependency-first linear order over graph
// nodes: every node appears after all nodes it depends on. Consuming the
// order in reverse therefore guarantees that by the time a node is
// visited, every consumer of its results has already been visited, which
// is the ordering invariant the gradient sweep relies on.
type PostOrderVisitor struct {
	visited map[Node]struct{}
	order   []Node
}

// NewPostOrderVisitor creates an empty visitor.
func NewPostOrderVisitor() *PostOrderVisitor {
	return &PostOrderVisitor{visited: make(map[Node]struct{})}
}

// Visit adds n and its transitive operands to the order, operands first.
// Nodes already visited are skipped, so shared subgraphs appear once.
func (v *PostOrderVisitor) Visit(n Node) {
	if _, seen := v.visited[n]; seen {
		return
	}
	v.visited[n] = struct{}{}
	for _, op := range n.Operands() {
		v.Visit(op.Node)
	}
	v.order = append(v.order, n)
}

// PostOrder returns the accumulated dependency-first order.
func (v *PostOrderVisitor) PostOrder() []Node {
	return v.order
}
