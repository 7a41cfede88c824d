package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	unlocked bool

	calls []string
}

func (f *fakeExec) isUnlocked() bool { return f.unlocked }
func (f *fakeExec) Unlock(ctx context.Context) error {
	f.calls = append(f.calls, "unlock")
	f.unlocked = true
	return nil
}
func (f *fakeExec) ShowCode(ctx context.Context) error {
	f.calls = append(f.calls, "code")
	return nil
}
func (f *fakeExec) NewCode(ctx context.Context) error {
	f.calls = append(f.calls, "newcode")
	return nil
}
func (f *fakeExec) RevokeCode(ctx context.Context) error {
	f.calls = append(f.calls, "revokecode")
	return nil
}
func (f *fakeExec) Invite(ctx context.Context) error {
	f.calls = append(f.calls, "invite")
	return nil
}
func (f *fakeExec) Accept(ctx context.Context) error {
	f.calls = append(f.calls, "accept")
	return nil
}
func (f *fakeExec) Confirm(ctx context.Context) error {
	f.calls = append(f.calls, "confirm")
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Rename(ctx context.Context) error {
	f.calls = append(f.calls, "rename")
	return nil
}
func (f *fakeExec) Remove(ctx context.Context) error {
	f.calls = append(f.calls, "remove")
	return nil
}
func (f *fakeExec) Share(ctx context.Context) error { f.calls = append(f.calls, "share"); return nil }
func (f *fakeExec) Comment(ctx context.Context) error {
	f.calls = append(f.calls, "comment")
	return nil
}
func (f *fakeExec) Import(ctx context.Context) error {
	f.calls = append(f.calls, "import")
	return nil
}
func (f *fakeExec) Inbox(ctx context.Context) error { f.calls = append(f.calls, "inbox"); return nil }
func (f *fakeExec) Comments(ctx context.Context) error {
	f.calls = append(f.calls, "comments")
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeExec) Profile(ctx context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}

func TestRunREPL_UnlockFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"unlock",
		"help",
		"newcode",
		"invite",
		"l",
		"share extra-arg",
		"import",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{unlocked: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"unlock", "newcode", "invite", "list", "share", "import"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("bogus\nquit\n")
	exec := &fakeExec{unlocked: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_EOFStops(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("code\n")
	exec := &fakeExec{unlocked: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "code" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
