package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/adierking/unplug/disassembler"
	"github.com/adierking/unplug/script"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bytecode>...\n", os.Args[0])
		os.Exit(1)
	}

	var g errgroup.Group
	for _, path := range os.Args[1:] {
		path := path
		g.Go(func() error { return disassembleFile(path) })
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func disassembleFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	table, err := os.ReadFile(base + ".entries")
	if err != nil {
		return err
	}
	in, err := parseEntryTable(string(table))
	if err != nil {
		return fmt.Errorf("%s.entries: %w", base, err)
	}
	in.Data = data

	text, err := disassembler.Disassemble(in)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(base+".evs", []byte(text), 0644)
}

// entryKinds maps sidecar directive names back to entry-point kinds.
var entryKinds = func() map[string]script.EntryKind {
	kinds := []script.EntryKind{
		script.EntryPrologue, script.EntryStartup, script.EntryDead,
		script.EntryPose, script.EntryTimeCycle, script.EntryTimeUp,
		script.EntryInteract, script.EntryLib,
	}
	m := make(map[string]script.EntryKind, len(kinds))
	for _, k := range kinds {
		m[k.Directive().Name()] = k
	}
	return m
}()

func parseEntryTable(table string) (disassembler.Input, error) {
	in := disassembler.Input{EntryPoints: make(map[script.EntryPoint]uint32)}
	for i, line := range strings.Split(table, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i == 0 {
			switch {
			case line == "globals":
				in.Target = script.TargetGlobals
			case strings.HasPrefix(line, "stage "):
				in.Target = script.TargetStage
				in.Stage = strings.TrimPrefix(line, "stage ")
			default:
				return in, fmt.Errorf("line 1: expected a target")
			}
			continue
		}

		fields := strings.Fields(line)
		kind, ok := entryKinds[fields[0]]
		if !ok {
			return in, fmt.Errorf("line %d: unknown entry point %q", i+1, fields[0])
		}
		ep := script.EntryPoint{Kind: kind}
		want := 2
		if kind == script.EntryInteract || kind == script.EntryLib {
			want = 3
		}
		if len(fields) != want {
			return in, fmt.Errorf("line %d: malformed entry point", i+1)
		}
		if want == 3 {
			idx, err := strconv.ParseInt(fields[1], 0, 32)
			if err != nil {
				return in, fmt.Errorf("line %d: %w", i+1, err)
			}
			ep.Index = int32(idx)
		}
		off, err := strconv.ParseUint(fields[want-1], 0, 32)
		if err != nil {
			return in, fmt.Errorf("line %d: %w", i+1, err)
		}
		in.EntryPoints[ep] = uint32(off)
	}
	return in, nil
}
