package tinysh

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

// newTestShell returns a shell that discards output.
func newTestShell(t *testing.T) *Shell {
	t.Helper()
	sh, err := New(io.Discard, nil)
	if err != nil {
		t.Fatal(err)
	}
	return sh
}

// newEchoShell returns a shell writing into a buffer for output assertions.
func newEchoShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	sh, err := New(&buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	return sh, &buf
}

// feed pushes every byte of s through the queue and the run loop.
func feed(t *testing.T, sh *Shell, s string) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		if !sh.Feed(s[i]) {
			t.Fatalf("Feed(%q) rejected", s[i])
		}
		for sh.Run() {
		}
	}
}

func TestNewNilWriter(t *testing.T) {
	if _, err := New(nil, nil); err != ErrInvalidArg {
		t.Errorf("New(nil): got %v, want ErrInvalidArg", err)
	}
}

func TestLoadTableNil(t *testing.T) {
	sh := newTestShell(t)
	if err := sh.LoadTable(nil); err != ErrInvalidArg {
		t.Errorf("LoadTable(nil): got %v, want ErrInvalidArg", err)
	}
}

func TestRunIdleReportsFalse(t *testing.T) {
	sh := newTestShell(t)
	if sh.Run() {
		t.Error("Run with no input reported work")
	}
}

func TestRunPollSource(t *testing.T) {
	// Poll mode: bytes come from the source when the queue is empty.
	input := []byte("echo\r")
	pos := 0
	src := func() (byte, bool) {
		if pos >= len(input) {
			return 0, false
		}
		b := input[pos]
		pos++
		return b, true
	}

	var buf bytes.Buffer
	sh, err := New(&buf, src)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	sh.LoadTable([]Command{{Name: "echo", Fn: func(args []string, _ any) {
		got = append(got, args...)
	}}})

	for sh.Run() {
	}
	if len(got) != 1 || got[0] != "echo" {
		t.Errorf("poll-mode exec args = %v", got)
	}
}

func TestInitialPromptShownOnce(t *testing.T) {
	sh, buf := newEchoShell(t)
	feed(t, sh, "a")
	if !strings.HasPrefix(buf.String(), "> ") {
		t.Errorf("first byte did not show prompt: %q", buf.String())
	}
	buf.Reset()
	feed(t, sh, "b")
	if strings.HasPrefix(buf.String(), "> ") {
		t.Errorf("prompt repeated on second byte: %q", buf.String())
	}
}

func TestBindKeyReplacesAndUnbinds(t *testing.T) {
	sh := newTestShell(t)
	first, second := 0, 0
	if !sh.BindKey(KeyF1, func(*Shell, Key, any) bool { first++; return true }, nil) {
		t.Fatal("BindKey failed")
	}
	if !sh.BindKey(KeyF1, func(*Shell, Key, any) bool { second++; return true }, nil) {
		t.Fatal("rebind failed")
	}
	if sh.Stats().KeybindCount != 1 {
		t.Errorf("KeybindCount = %d after rebind, want 1", sh.Stats().KeybindCount)
	}

	feed(t, sh, "\x1bOP") // F1
	if first != 0 || second != 1 {
		t.Errorf("handlers fired (%d, %d), want (0, 1)", first, second)
	}

	sh.UnbindKey(KeyF1)
	if sh.Stats().KeybindCount != 0 {
		t.Errorf("KeybindCount = %d after unbind, want 0", sh.Stats().KeybindCount)
	}
	feed(t, sh, "\x1bOP")
	if second != 1 {
		t.Error("handler fired after unbind")
	}
}

func TestBindKeyTableFull(t *testing.T) {
	sh := newTestShell(t)
	h := func(*Shell, Key, any) bool { return true }
	for i := 0; i < MaxKeyBinds; i++ {
		if !sh.BindKey(Key(i+1), h, nil) {
			t.Fatalf("BindKey %d failed below capacity", i)
		}
	}
	if sh.BindKey(KeyF12, h, nil) {
		t.Error("BindKey succeeded past capacity")
	}
	// Rebinding an existing key must still work on a full table.
	if !sh.BindKey(Key(1), h, nil) {
		t.Error("rebind failed on full table")
	}
}

func TestBindingSuppressesBuiltin(t *testing.T) {
	sh, buf := newEchoShell(t)
	handled := false
	sh.BindKey(KeyCtrlL, func(*Shell, Key, any) bool {
		handled = true
		return true
	}, nil)
	feed(t, sh, "\x0c") // Ctrl-L
	if !handled {
		t.Fatal("binding did not fire")
	}
	if strings.Contains(buf.String(), ansiClearScreen) {
		t.Error("built-in clear-screen ran despite handled binding")
	}
}

func TestBindingFallthroughToBuiltin(t *testing.T) {
	sh, buf := newEchoShell(t)
	sh.BindKey(KeyCtrlL, func(*Shell, Key, any) bool { return false }, nil)
	feed(t, sh, "\x0c")
	if !strings.Contains(buf.String(), ansiClearScreen) {
		t.Error("built-in did not run after handler declined")
	}
}

func TestBindKeyOpaqueData(t *testing.T) {
	sh := newTestShell(t)
	var got any
	sh.BindKey(KeyF2, func(_ *Shell, _ Key, data any) bool {
		got = data
		return true
	}, "payload")
	feed(t, sh, "\x1bOQ")
	if got != "payload" {
		t.Errorf("handler data = %v, want %q", got, "payload")
	}
}

func TestStatsSnapshot(t *testing.T) {
	sh := newTestShell(t)
	sh.LoadTable([]Command{{Name: "help"}, {Name: "echo"}, {Name: "exit"}})
	sh.AddHistory("one")
	sh.AddHistory("two")
	sh.BindKey(KeyF1, func(*Shell, Key, any) bool { return true }, nil)

	st := sh.Stats()
	if st.CommandCount != 3 {
		t.Errorf("CommandCount = %d, want 3", st.CommandCount)
	}
	if st.HistoryCount != 2 {
		t.Errorf("HistoryCount = %d, want 2", st.HistoryCount)
	}
	if st.KeybindCount != 1 {
		t.Errorf("KeybindCount = %d, want 1", st.KeybindCount)
	}
	if st.TrieOverflow {
		t.Error("TrieOverflow set on a small table")
	}
	if st.MaxNodesUsed < 2 {
		t.Errorf("MaxNodesUsed = %d, want at least the root plus children", st.MaxNodesUsed)
	}
}

func TestFeedOverflowDropsByte(t *testing.T) {
	sh := newTestShell(t)
	for i := 0; i < InputQueueSize-1; i++ {
		if !sh.Feed('x') {
			t.Fatalf("Feed %d rejected below capacity", i)
		}
	}
	if sh.Feed('x') {
		t.Error("Feed accepted into a full queue")
	}
}

func TestSetPromptAffectsRedraw(t *testing.T) {
	sh, buf := newEchoShell(t)
	sh.SetPrompt("sh$ ")
	feed(t, sh, "a")
	out := buf.String()
	if !strings.Contains(out, "sh$ a") {
		t.Errorf("redraw missing custom prompt: %q", out)
	}
	// Cursor lands after prompt (4) + one char.
	if !strings.Contains(out, "\x1b[5C") {
		t.Errorf("cursor reposition missing for prompt width: %q", out)
	}
}
