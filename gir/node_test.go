package gir

import (
	"strings"
	"testing"
)

func TestNodePoolBranches(t *testing.T) {
	pool := NewNodePool()
	entry := pool.Create("entry")
	a := pool.Create("a")
	b := pool.Create("b")

	pool.AddBranch(entry, a)
	pool.AddBranch(entry, b)
	pool.AddBranch(entry, a) // duplicate edge collapses

	succs := pool.Get(entry).Successors
	if len(succs) != 2 {
		t.Fatalf("successor count = %d, want 2", len(succs))
	}
	if succs[0] != a || succs[1] != b {
		t.Errorf("successors = %v, want [%d %d]", succs, a, b)
	}
	if pool.Len() != 3 {
		t.Errorf("pool length = %d, want 3", pool.Len())
	}
}

func TestOperationString(t *testing.T) {
	op := Operation{Op: OpFAdd, ID: 5, TypeID: 2, Arguments: []uint32{3, 4}}
	if got, want := op.String(), "%5 = OpFAdd %2 3 4"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	store := Operation{Op: OpStore, Arguments: []uint32{1, 2}}
	if got, want := store.String(), "OpStore 1 2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDumpFunctionTerminators(t *testing.T) {
	pool := NewNodePool()
	entry := pool.Create("entry")
	exit := pool.Create("exit")
	pool.AddBranch(entry, exit)
	pool.Get(entry).Terminator = TermCondition{Cond: 9, True: exit, False: exit}
	pool.Get(exit).Terminator = TermReturn{}

	fn := ConvertedFunction{Pool: pool, Entry: entry}
	var sb strings.Builder
	DumpFunction(&sb, &fn)
	out := sb.String()

	for _, want := range []string{`node 0 "entry"`, "cond %9", `node 1 "exit"`, "return"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestDumpUnsetTerminator(t *testing.T) {
	pool := NewNodePool()
	entry := pool.Create("entry")
	fn := ConvertedFunction{Pool: pool, Entry: entry}

	var sb strings.Builder
	DumpFunction(&sb, &fn)
	if !strings.Contains(sb.String(), "<no terminator>") {
		t.Errorf("unset terminator not surfaced:\n%s", sb.String())
	}
}
