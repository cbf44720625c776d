// Package diag renders a buffered tree's structure for interactive
// inspection: a coloured, per-level dump of containers and their payloads.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	levelColor     = color.New(color.FgCyan, color.Bold)
	separatorColor = color.New(color.FgYellow)
	putColor       = color.New(color.FgGreen)
	delColor       = color.New(color.FgRed, color.CrossedOut)
)

// Dumper renders a tree's Dump() snapshot. KeyString formats a single
// payload's key for display; the tree's own Dump already reduces
// each payload to (key, isPut), so this package never needs to know V.
type Dumper[K any] struct {
	KeyString func(K) string
}

// NodeView mirrors bftree.NodeDump without importing the bftree package,
// so this package stays usable against any tree shaped the same way.
type NodeView[K any] struct {
	Containers []ContainerView[K]
}

// ContainerView mirrors bftree.ContainerDump[K, V] with the value erased.
type ContainerView[K any] struct {
	Keys  []K
	Kinds []bool
	Child *NodeView[K]
}

// Print writes a human-readable, coloured dump of root to w, one
// indentation level per tree depth.
func (d Dumper[K]) Print(w io.Writer, root *NodeView[K]) {
	d.printNode(w, root, 0)
}

func (d Dumper[K]) printNode(w io.Writer, n *NodeView[K], depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s\n", indent, levelColor.Sprintf("node(depth=%d, containers=%d)", depth, len(n.Containers)))
	for i, c := range n.Containers {
		fmt.Fprintf(w, "%s  %s ", indent, separatorColor.Sprintf("container[%d]", i))
		for j, k := range c.Keys {
			if c.Kinds[j] {
				fmt.Fprint(w, putColor.Sprintf("%s ", d.KeyString(k)))
			} else {
				fmt.Fprint(w, delColor.Sprintf("%s ", d.KeyString(k)))
			}
		}
		fmt.Fprintln(w)
		if c.Child != nil {
			d.printNode(w, c.Child, depth+1)
		}
	}
}
