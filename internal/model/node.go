package model

// Node is a physical or virtual machine hosting containers.
type Node struct {
	name      string
	capacity  Resources
	available Resources
	clock     TickSource

	attached   map[int][]WorkloadUnit
	containers []*Container
}

// NewNode creates a node with the given capacity, fully available.
func NewNode(clock TickSource, name string, capacity Resources) *Node {
	return &Node{
		name:      name,
		capacity:  capacity,
		available: capacity,
		clock:     clock,
		attached:  make(map[int][]WorkloadUnit),
	}
}

func (n *Node) Name() string         { return n.name }
func (n *Node) Capacity() Resources  { return n.capacity }
func (n *Node) Available() Resources { return n.available }

func (n *Node) Now() int {
	if n.clock == nil {
		return 0
	}
	return n.clock.Now()
}

// Attach records a placed workload (a container) in the per-tick index and,
// when it is a container, in the node's container list.
func (n *Node) Attach(tick int, w WorkloadUnit) {
	n.attached[tick] = append(n.attached[tick], w)
	if c, ok := w.(*Container); ok {
		n.containers = append(n.containers, c)
	}
}

// AttachedAt returns the workloads attached at the given tick.
func (n *Node) AttachedAt(tick int) []WorkloadUnit {
	return n.attached[tick]
}

// Attached returns the full per-tick attachment index.
func (n *Node) Attached() map[int][]WorkloadUnit {
	return n.attached
}

// Containers returns the containers placed on this node, in placement order.
func (n *Node) Containers() []*Container {
	return n.containers
}

// Reserve debits available capacity when a hosted container starts.
func (n *Node) Reserve(r Resources) {
	n.available = n.available.Sub(r)
}

// Release credits capacity back when a hosted container stops.
func (n *Node) Release(r Resources) {
	n.available = n.available.Add(r)
}
