// Package tinysh implements an interactive command-line engine for
// byte-oriented transports: it turns a raw byte stream arriving one
// character at a time into edited command lines, dispatches them against a
// static command table, and renders the result through an io.Writer using a
// fixed VT100/ANSI subset.
//
// The engine is built for resource-constrained, interrupt-driven hosts. All
// state lives in fixed-capacity arrays inside a single Shell value, no
// operation blocks, and Run processes at most one byte per call, so the
// shell can sit inside a cooperative superloop or a single real-time task.
// The only cross-context entry point is Feed, which is safe to call from
// exactly one producer (e.g. a UART receive interrupt) concurrently with one
// consumer calling Run.
package tinysh

import (
	"errors"
	"io"
)

// Capacity configuration. These mirror the fixed budgets of the engine:
// every buffer below is preallocated inside Shell and never grows.
const (
	// LineBufSize is the maximum length of one input line, with one slot
	// reserved for the terminator position.
	LineBufSize = 128

	// MaxArgs is the maximum number of tokens a submitted line is split into.
	MaxArgs = 8

	// TrieMaxNodes is the command trie's node arena size. Increase it if
	// LoadTable reports ErrTrieOverflow.
	TrieMaxNodes = 128

	// TrieMaxChildren is the fixed fan-out of one trie node.
	TrieMaxChildren = 16

	// InputQueueSize is the producer-to-consumer byte queue capacity.
	// Must be a power of two so wraparound is a mask operation.
	InputQueueSize = 64

	// HistorySize is the number of lines kept in the history ring.
	HistorySize = 8

	// MaxKeyBinds is the capacity of the custom key-binding table.
	MaxKeyBinds = 16
)

// Status errors reported by the public API. Capacity exhaustion is never
// fatal: the failing operation is rejected and prior state is left intact.
var (
	// ErrInvalidArg reports a nil required argument or callback.
	ErrInvalidArg = errors.New("tinysh: invalid argument")

	// ErrTrieOverflow reports command trie arena or fan-out exhaustion
	// during LoadTable. The trie resolves nothing until a successful reload.
	ErrTrieOverflow = errors.New("tinysh: command trie overflow")
)

// CommandFunc is a command implementation. args[0] is the command name as
// typed; data is the opaque value from the command's descriptor. Output, if
// any, is the callback's own responsibility via the shell's writer.
type CommandFunc func(args []string, data any)

// KeyHandler is a custom key-binding callback. Returning true consumes the
// event and suppresses the built-in behavior for that key.
type KeyHandler func(sh *Shell, key Key, data any) bool

// LoginFunc validates a username/password pair. Constant-time comparison,
// if desired, is the implementation's responsibility.
type LoginFunc func(user, pass string) bool

// CompleteFunc replaces the built-in tab completion entirely. It receives
// the current line and is responsible for all output and line edits.
type CompleteFunc func(sh *Shell, line string)

// ByteSource is an optional poll-mode input callback consulted when the
// producer-side queue is empty. It must not block.
type ByteSource func() (byte, bool)

// Command describes one entry of the static command table.
type Command struct {
	Name string
	Desc string
	Fn   CommandFunc
	Data any
}

// keyBind is one entry of the custom key-binding table.
type keyBind struct {
	key     Key
	handler KeyHandler
	data    any
}

// Stats is a read-only diagnostic snapshot of the shell's fixed resources.
type Stats struct {
	MaxNodesUsed int  // peak trie node usage across loads
	TrieOverflow bool // latched when a LoadTable ran out of nodes
	HistoryCount int
	CommandCount int
	KeybindCount int
}

// Shell is the engine aggregate. One Shell serves one session; it is owned
// by the embedding application and, apart from Feed, must only be used from
// the consumer context.
type Shell struct {
	w    io.Writer
	getc ByteSource

	// Login gate.
	loginFn      LoginFunc
	loginTrigger byte
	loggedIn     bool
	loginState   uint8
	loginUser    [LineBufSize]byte
	loginPass    [LineBufSize]byte
	loginUserLen int
	loginPassLen int

	// Line editing.
	line    [LineBufSize]byte
	lineLen int
	cursor  int
	killBuf [LineBufSize]byte
	killLen int
	prompt  string

	// Command table and its dispatch trie.
	table []Command
	trie  commandTrie

	// Escape-sequence decoding.
	esc escDecoder

	// History ring.
	hist historyRing

	// Custom key bindings, consulted before built-in handling.
	binds     [MaxKeyBinds]keyBind
	bindCount int

	// Tab completion override.
	completeFn CompleteFunc

	// Producer-to-consumer input queue.
	queue inputQueue

	echo        bool
	promptShown bool

	// Scratch storage, so the hot path performs no allocation.
	argv    [MaxArgs]string
	scratch [1]byte
}

// New initializes a shell writing output bytes to w. src is an optional
// poll-mode byte source consulted when the Feed queue is empty; pass nil
// when all input arrives through Feed. A nil writer fails initialization.
func New(w io.Writer, src ByteSource) (*Shell, error) {
	if w == nil {
		return nil, ErrInvalidArg
	}
	sh := &Shell{
		w:      w,
		getc:   src,
		prompt: "> ",
		echo:   true,
	}
	sh.trie.reset()
	sh.hist.reset()
	return sh, nil
}

// LoadTable installs the command table and rebuilds the dispatch trie from
// scratch. The table must stay immutable while loaded; reloading replaces it
// wholesale. On ErrTrieOverflow the trie is left resolving nothing until a
// smaller table is loaded.
func (sh *Shell) LoadTable(table []Command) error {
	if table == nil {
		return ErrInvalidArg
	}
	sh.table = table
	sh.trie.reset()
	for i := range table {
		if table[i].Name == "" {
			continue
		}
		if !sh.trie.insert(table[i].Name, int16(i)) {
			sh.trie.fail()
			return ErrTrieOverflow
		}
	}
	return nil
}

// Feed enqueues one input byte from the producer context. It never blocks
// and is the only method safe to call concurrently with Run, provided there
// is exactly one producer. Returns false when the queue is full; the byte
// is dropped.
func (sh *Shell) Feed(b byte) bool {
	return sh.queue.push(b)
}

// Run dequeues and fully processes at most one input byte, then returns.
// When the queue is empty the poll source, if any, is consulted. Reports
// whether a byte was processed, so a superloop can idle when false.
func (sh *Shell) Run() bool {
	b, ok := sh.queue.pop()
	if !ok && sh.getc != nil {
		b, ok = sh.getc()
	}
	if !ok {
		return false
	}

	// First prompt: only without a login gate, and only once.
	if !sh.promptShown && sh.loginFn == nil {
		sh.loggedIn = true
		sh.promptShown = true
		sh.showPrompt()
	}

	if sh.loginFn != nil && !sh.loggedIn {
		sh.handleLogin(b)
		return true
	}

	sh.processByte(b)
	return true
}

// SetLogin enables the login gate. The user must send trigger before the
// username prompt appears; fn validates the collected credentials.
func (sh *Shell) SetLogin(fn LoginFunc, trigger byte) {
	sh.loginFn = fn
	sh.loginTrigger = trigger
}

// Logout discards the session's authentication; the next input byte must be
// the login trigger again.
func (sh *Shell) Logout() {
	sh.loggedIn = false
	sh.loginReset()
}

// BindKey registers a custom handler for key, replacing any earlier binding
// for the same key. Returns false when the binding table is full.
func (sh *Shell) BindKey(key Key, handler KeyHandler, data any) bool {
	for i := 0; i < sh.bindCount; i++ {
		if sh.binds[i].key == key {
			sh.binds[i].handler = handler
			sh.binds[i].data = data
			return true
		}
	}
	if sh.bindCount >= MaxKeyBinds {
		return false
	}
	sh.binds[sh.bindCount] = keyBind{key: key, handler: handler, data: data}
	sh.bindCount++
	return true
}

// UnbindKey removes the custom binding for key, if any.
func (sh *Shell) UnbindKey(key Key) {
	for i := 0; i < sh.bindCount; i++ {
		if sh.binds[i].key == key {
			copy(sh.binds[i:sh.bindCount-1], sh.binds[i+1:sh.bindCount])
			sh.bindCount--
			sh.binds[sh.bindCount] = keyBind{}
			return
		}
	}
}

// SetComplete installs a tab-completion override. Pass nil to restore the
// built-in command-name completion.
func (sh *Shell) SetComplete(fn CompleteFunc) {
	sh.completeFn = fn
}

// SetEcho enables or disables echoing of inserted characters. With echo off
// no redraw happens on insertion.
func (sh *Shell) SetEcho(enabled bool) {
	sh.echo = enabled
}

// Echo reports whether echo is enabled.
func (sh *Shell) Echo() bool {
	return sh.echo
}

// SetPrompt replaces the prompt string. Its width feeds into cursor
// repositioning, so it should not contain control sequences.
func (sh *Shell) SetPrompt(prompt string) {
	sh.prompt = prompt
}

// Line returns the current content of the line buffer.
func (sh *Shell) Line() string {
	return string(sh.line[:sh.lineLen])
}

// Cursor returns the edit position within the line buffer, 0..len(Line()).
func (sh *Shell) Cursor() int {
	return sh.cursor
}

// KillBuffer returns the most recently killed text span. There is no
// built-in yank; custom key handlers can implement paste from this.
func (sh *Shell) KillBuffer() string {
	return string(sh.killBuf[:sh.killLen])
}

// AddHistory records line in the history ring without executing it (useful
// for remotely injected commands). Empty lines and duplicates of the most
// recent entry are ignored.
func (sh *Shell) AddHistory(line string) {
	sh.hist.add(line)
}

// HistoryEntry returns the history entry at index, where 0 is the oldest
// stored entry and Stats().HistoryCount-1 the most recent.
func (sh *Shell) HistoryEntry(index int) (string, bool) {
	return sh.hist.entry(index)
}

// Stats returns a snapshot of resource usage. It has no side effects.
func (sh *Shell) Stats() Stats {
	return Stats{
		MaxNodesUsed: int(sh.trie.maxUsed),
		TrieOverflow: sh.trie.overflow,
		HistoryCount: sh.hist.count,
		CommandCount: len(sh.table),
		KeybindCount: sh.bindCount,
	}
}

// putByte writes one byte to the sink.
func (sh *Shell) putByte(b byte) {
	sh.scratch[0] = b
	sh.w.Write(sh.scratch[:])
}

// puts writes a string to the sink.
func (sh *Shell) puts(s string) {
	io.WriteString(sh.w, s)
}

// putUint writes an unsigned decimal without fmt.
func (sh *Shell) putUint(n int) {
	var buf [8]byte
	p := len(buf)
	if n <= 0 {
		p--
		buf[p] = '0'
	}
	for n > 0 {
		p--
		buf[p] = byte('0' + n%10)
		n /= 10
	}
	sh.w.Write(buf[p:])
}

func (sh *Shell) showPrompt() {
	sh.puts(sh.prompt)
}
