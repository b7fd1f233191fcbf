package layout

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/BardicNoel/perktree/pkg/dag"
)

// ErrCycleDetected is returned by subtree width computation when a node is
// reached again through its own descendants.
var ErrCycleDetected = errors.New("cycle detected")

// visitChain is the path from the current top-level call down to a node.
// It is immutable: pushing returns a new head sharing the tail, so sibling
// calls never see each other's visits and nothing is cloned.
type visitChain struct {
	id   string
	prev *visitChain
}

func (c *visitChain) push(id string) *visitChain { return &visitChain{id: id, prev: c} }

func (c *visitChain) contains(id string) bool {
	for ; c != nil; c = c.prev {
		if c.id == id {
			return true
		}
	}
	return false
}

// nodeWidth returns the fixed width of a node.
func nodeWidth(label string, cfg Config) float64 {
	if cfg.LabelCharWidth <= 0 {
		return cfg.NodeWidth
	}
	return max(cfg.NodeWidth, float64(utf8.RuneCountInString(label))*cfg.LabelCharWidth+2*cfg.Padding)
}

// widthCalc computes subtree widths for one tree.
//
// Every child edge is followed to detect cycles, but only owned children
// contribute width, so a node with several parents is counted once.
type widthCalc struct {
	g       *dag.DAG
	own     map[string]float64
	owned   map[string][]string
	spacing float64
	memo    map[string]float64
}

// width returns the subtree width of id, or ErrCycleDetected.
func (c *widthCalc) width(id string, chain *visitChain) (float64, error) {
	if w, ok := c.memo[id]; ok {
		return w, nil
	}
	if chain.contains(id) {
		return 0, fmt.Errorf("%w: %s", ErrCycleDetected, id)
	}

	next := chain.push(id)
	childWidths := make(map[string]float64, len(c.owned[id]))
	for _, child := range c.g.Children(id) {
		w, err := c.width(child, next)
		if err != nil {
			return 0, err
		}
		childWidths[child] = w
	}

	w := c.own[id]
	if kids := c.owned[id]; len(kids) > 0 {
		sum := float64(len(kids)-1) * c.spacing
		for _, k := range kids {
			sum += childWidths[k]
		}
		w = max(w, sum)
	}
	c.memo[id] = w
	return w, nil
}

// subtreeWidths computes the subtree width of every node in ids. It fails
// with ErrCycleDetected if any node is reachable from itself.
func subtreeWidths(g *dag.DAG, ids []string, own map[string]float64, owned map[string][]string, spacing float64) (map[string]float64, error) {
	c := &widthCalc{
		g:       g,
		own:     own,
		owned:   owned,
		spacing: spacing,
		memo:    make(map[string]float64, len(ids)),
	}
	for _, id := range ids {
		if _, err := c.width(id, nil); err != nil {
			return nil, err
		}
	}
	return c.memo, nil
}

// ownership assigns each non-root node to the first parent, in ID order,
// sitting exactly one band above it. The result maps a parent to its owned
// children in ID order. Nodes without such a parent are left unowned.
func ownership(g *dag.DAG, ids []string, depth map[string]int) map[string][]string {
	owned := make(map[string][]string)
	for _, id := range ids {
		for _, p := range g.Parents(id) {
			if p != id && depth[p] == depth[id]-1 {
				owned[p] = append(owned[p], id)
				break
			}
		}
	}
	return owned
}
