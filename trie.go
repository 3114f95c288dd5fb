package tinysh

// commandTrie is a fixed-capacity prefix tree mapping command names to
// indices into the loaded command table. Nodes live in a preallocated arena
// and refer to each other by small integer handles; node 0 is the root.
// Children are kept as unsorted (byte, handle) pairs and linear-scanned:
// the fan-out is ASCII command characters, so it stays small.
//
// Invariants: every root-to-node path spells a prefix of some loaded name;
// a node carries a command index (>= 0) iff a loaded name ends exactly
// there.
type trieNode struct {
	nChildren uint8
	cmdIdx    int16
	childKey  [TrieMaxChildren]byte
	childIdx  [TrieMaxChildren]int16
}

type commandTrie struct {
	nodes    [TrieMaxNodes]trieNode
	free     int16 // next unallocated arena slot
	maxUsed  int16 // peak usage across loads, for Stats
	overflow bool  // latched on arena or fan-out exhaustion
}

// reset clears the arena back to a lone root node. Peak usage and the
// overflow flag survive only until the next reset's bookkeeping below.
func (t *commandTrie) reset() {
	for i := range t.nodes {
		t.nodes[i].nChildren = 0
		t.nodes[i].cmdIdx = -1
	}
	t.free = 1
	if t.maxUsed < 1 {
		t.maxUsed = 1
	}
	t.overflow = false
}

// fail marks a broken build: the arena is wiped so lookups resolve nothing,
// and the overflow flag stays latched until a successful reload.
func (t *commandTrie) fail() {
	peak := t.maxUsed
	t.reset()
	t.maxUsed = peak
	t.overflow = true
}

// newNode allocates one arena slot, or -1 when the arena is exhausted.
func (t *commandTrie) newNode() int16 {
	if int(t.free) >= TrieMaxNodes {
		t.overflow = true
		return -1
	}
	idx := t.free
	t.free++
	if t.free > t.maxUsed {
		t.maxUsed = t.free
	}
	n := &t.nodes[idx]
	n.nChildren = 0
	n.cmdIdx = -1
	return idx
}

// findChild returns the child of node reached by c, or -1.
func (t *commandTrie) findChild(node int16, c byte) int16 {
	n := &t.nodes[node]
	for i := uint8(0); i < n.nChildren; i++ {
		if n.childKey[i] == c {
			return n.childIdx[i]
		}
	}
	return -1
}

// addChild extends node with a new child for c. Returns -1 when the node's
// child slots or the arena are exhausted.
func (t *commandTrie) addChild(node int16, c byte) int16 {
	if t.nodes[node].nChildren >= TrieMaxChildren {
		t.overflow = true
		return -1
	}
	idx := t.newNode()
	if idx < 0 {
		return -1
	}
	n := &t.nodes[node]
	n.childKey[n.nChildren] = c
	n.childIdx[n.nChildren] = idx
	n.nChildren++
	return idx
}

// insert walks/extends the path for name and marks its terminal node with
// cmdIdx. Returns false on capacity exhaustion.
func (t *commandTrie) insert(name string, cmdIdx int16) bool {
	cur := int16(0)
	for i := 0; i < len(name); i++ {
		child := t.findChild(cur, name[i])
		if child < 0 {
			child = t.addChild(cur, name[i])
			if child < 0 {
				return false
			}
		}
		cur = child
	}
	t.nodes[cur].cmdIdx = cmdIdx
	return true
}

// lookup walks the path for name and returns the command index at its
// terminal node, or -1 when any byte has no matching child or the terminal
// node carries no index (name is a strict prefix of a loaded command).
func (t *commandTrie) lookup(name string) int16 {
	cur := int16(0)
	for i := 0; i < len(name); i++ {
		child := t.findChild(cur, name[i])
		if child < 0 {
			return -1
		}
		cur = child
	}
	return t.nodes[cur].cmdIdx
}
