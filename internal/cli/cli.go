// Package cli implements the interactive REPL used by cmd/bftree, exposing
// the buffered tree's Put/Get/Del surface plus LOAD for synthetic seeding,
// STATS/DUMP/VERIFY for inspection, and EXIT to end the session.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/vchandela/bftree/bftree"
	"github.com/vchandela/bftree/internal/diag"
	"github.com/vchandela/bftree/internal/seed"
)

// ErrUsage signals that a command was invoked with the wrong argument shape.
var ErrUsage = errors.New("cli: usage error")

// Cli drives one interactive session against a single tree instance.
type Cli struct {
	scanner *bufio.Scanner
	out     io.Writer
	tree    *bftree.Tree[string, string]
	dumper  diag.Dumper[string]
}

// New wires a scanner and output sink to an already-constructed tree.
func New(s *bufio.Scanner, out io.Writer, tree *bftree.Tree[string, string]) *Cli {
	return &Cli{
		scanner: s,
		out:     out,
		tree:    tree,
		dumper:  diag.Dumper[string]{KeyString: func(k string) string { return k }},
	}
}

// Start runs the REPL until the scanner is exhausted or EXIT is issued.
func (c *Cli) Start() {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if err := c.processInput(c.scanner.Text()); err != nil {
			fmt.Fprintln(c.out, err)
		}
		c.printPrompt()
	}
}

func (c *Cli) printHelp() {
	fmt.Fprint(c.out, `
Buffered Tree CLI

Available Commands:
  SET <key> <val>   Insert a key-value pair
  DEL <key>         Insert a tombstone for key
  GET <key>         Retrieve the value for key
  LOAD <n>          Seed the tree with n synthetic faker-generated pairs
  STATS             Print height, put_count, del_count
  DUMP              Print a coloured structural dump of the tree
  VERIFY            Check structural invariants over the whole tree
  EXIT              Terminate this session
`)
}

func (c *Cli) printPrompt() {
	fmt.Fprint(c.out, "> ")
}

func (c *Cli) processInput(line string) error {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return nil
	}
	command := strings.ToLower(fields[0])
	switch command {
	case "set":
		return c.processSet(fields[1:])
	case "del":
		return c.processDel(fields[1:])
	case "get":
		return c.processGet(fields[1:])
	case "load":
		return c.processLoad(fields[1:])
	case "stats":
		return c.processStats(fields[1:])
	case "dump":
		return c.processDump(fields[1:])
	case "verify":
		return c.processVerify(fields[1:])
	case "exit":
		os.Exit(0)
		return nil
	default:
		fmt.Fprintf(c.out, "Unknown command %q\n", command)
		return nil
	}
}

func (c *Cli) processSet(args []string) error {
	if len(args) != 2 {
		return errors.Wrap(ErrUsage, "SET <key> <value>")
	}
	c.tree.Put(args[0], args[1])
	return nil
}

func (c *Cli) processDel(args []string) error {
	if len(args) != 1 {
		return errors.Wrap(ErrUsage, "DEL <key>")
	}
	c.tree.Del(args[0])
	return nil
}

func (c *Cli) processGet(args []string) error {
	if len(args) != 1 {
		return errors.Wrap(ErrUsage, "GET <key>")
	}
	v, ok := c.tree.Get(args[0])
	if !ok {
		fmt.Fprintln(c.out, "Key not found.")
		return nil
	}
	fmt.Fprintln(c.out, v)
	return nil
}

func (c *Cli) processLoad(args []string) error {
	if len(args) != 1 {
		return errors.Wrap(ErrUsage, "LOAD <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return errors.Wrap(ErrUsage, "LOAD <n>: n must be a non-negative integer")
	}
	for _, p := range seed.Generate(n) {
		c.tree.Put(p.Key, p.Value)
	}
	fmt.Fprintf(c.out, "Loaded %d synthetic pairs.\n", n)
	return nil
}

func (c *Cli) processStats(args []string) error {
	if len(args) != 0 {
		return errors.Wrap(ErrUsage, "STATS")
	}
	fmt.Fprintf(c.out, "height=%d put_count=%d del_count=%d\n", c.tree.Height(), c.tree.PutCount(), c.tree.DelCount())
	return nil
}

func (c *Cli) processDump(args []string) error {
	if len(args) != 0 {
		return errors.Wrap(ErrUsage, "DUMP")
	}
	c.dumper.Print(c.out, toNodeView(c.tree.Dump()))
	return nil
}

func (c *Cli) processVerify(args []string) error {
	if len(args) != 0 {
		return errors.Wrap(ErrUsage, "VERIFY")
	}
	if err := c.tree.Check(); err != nil {
		fmt.Fprintf(c.out, "Invariant violation: %v\n", err)
		return nil
	}
	fmt.Fprintln(c.out, "OK")
	return nil
}

func toNodeView(n *bftree.NodeDump[string, string]) *diag.NodeView[string] {
	if n == nil {
		return nil
	}
	v := &diag.NodeView[string]{Containers: make([]diag.ContainerView[string], len(n.Containers))}
	for i, c := range n.Containers {
		v.Containers[i] = diag.ContainerView[string]{
			Keys:  c.Keys,
			Kinds: c.Kinds,
			Child: toNodeView(c.Child),
		}
	}
	return v
}
