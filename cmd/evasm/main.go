package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/adierking/unplug/assembler"
	"github.com/adierking/unplug/script"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <source>...\n", os.Args[0])
		os.Exit(1)
	}

	// Inputs are independent translation units, so assemble them in parallel.
	var g errgroup.Group
	for _, path := range os.Args[1:] {
		path := path
		g.Go(func() error { return assembleFile(path) })
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func assembleFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	s, err := assembler.Parse(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	out, err := assembler.New().AssembleScript(s)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	if err := os.WriteFile(base+".bin", out.Code, 0644); err != nil {
		return err
	}
	// The game stores entry offsets in its container files, not in the code
	// buffer, so they go in a sidecar the disassembler reads back.
	return os.WriteFile(base+".entries", []byte(entryTable(s, out)), 0644)
}

func entryTable(s *script.Script, out *assembler.Output) string {
	var b strings.Builder
	switch s.Target {
	case script.TargetGlobals:
		b.WriteString("globals\n")
	case script.TargetStage:
		fmt.Fprintf(&b, "stage %s\n", s.Stage)
	}

	eps := make([]script.EntryPoint, 0, len(out.EntryPoints))
	for ep := range out.EntryPoints {
		eps = append(eps, ep)
	}
	sort.Slice(eps, func(i, j int) bool {
		if eps[i].Kind != eps[j].Kind {
			return eps[i].Kind < eps[j].Kind
		}
		return eps[i].Index < eps[j].Index
	})
	for _, ep := range eps {
		off := out.EntryPoints[ep]
		switch ep.Kind {
		case script.EntryInteract, script.EntryLib:
			fmt.Fprintf(&b, "%s %d 0x%x\n", ep.Kind.Directive().Name(), ep.Index, off)
		default:
			fmt.Fprintf(&b, "%s 0x%x\n", ep.Kind.Directive().Name(), off)
		}
	}
	return b.String()
}
