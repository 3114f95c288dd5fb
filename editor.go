package tinysh

// Line editor: key dispatch, in-place buffer edits and redraw. The buffer
// invariant 0 <= cursor <= lineLen <= LineBufSize-1 holds at every
// mutation boundary.

// processByte handles one literal input byte in the consumer context.
func (sh *Shell) processByte(b byte) {
	// Escape sequences first; a byte swallowed mid-sequence is done here.
	res, key := sh.esc.feed(b)
	switch res {
	case escMore:
		return
	case escDone:
		if key != KeyNone {
			sh.handleKey(key)
		}
		return
	}

	// Control chords.
	if b >= 1 && b <= 26 {
		if key := controlKey(b); key != KeyNone {
			sh.handleKey(key)
			return
		}
	}

	switch {
	case b == '\r' || b == '\n':
		sh.execLine()
		sh.resetLine()

	case b == 0x7f || b == '\b':
		sh.backspace()

	case b >= 0x20 && b < 0x7f:
		sh.insertByte(b)
	}
	// Everything else is ignored.
}

// handleKey dispatches one abstract key event: custom bindings win, then
// built-in behavior. Reports whether anything consumed the event.
func (sh *Shell) handleKey(key Key) bool {
	for i := 0; i < sh.bindCount; i++ {
		if sh.binds[i].key == key && sh.binds[i].handler != nil {
			if sh.binds[i].handler(sh, key, sh.binds[i].data) {
				return true
			}
		}
	}

	switch key {
	case KeyCtrlA, KeyHome:
		sh.cursor = 0
		sh.repositionCursor()

	case KeyCtrlE, KeyEnd:
		sh.cursor = sh.lineLen
		sh.repositionCursor()

	case KeyCtrlB, KeyLeft:
		if sh.cursor > 0 {
			sh.cursor--
			sh.putByte('\b')
		}

	case KeyCtrlF, KeyRight:
		if sh.cursor < sh.lineLen {
			sh.putByte(sh.line[sh.cursor])
			sh.cursor++
		}

	case KeyCtrlD, KeyDelete:
		sh.deleteAtCursor()

	case KeyCtrlK:
		sh.killToEnd()

	case KeyCtrlU:
		sh.killToStart()

	case KeyCtrlW:
		sh.killWordBack()

	case KeyCtrlT:
		sh.transpose()

	case KeyCtrlL:
		sh.ClearScreen()

	case KeyCtrlC:
		sh.puts("^C\r\n")
		sh.resetLine()
		sh.showPrompt()

	case KeyCtrlP, KeyUp:
		sh.historyPrev()

	case KeyCtrlN, KeyDown:
		sh.historyNext()

	case KeyTab:
		sh.tabComplete()

	default:
		return false
	}
	return true
}

// insertByte inserts one printable byte at the cursor, shifting the tail
// right. Full-buffer inserts are dropped.
func (sh *Shell) insertByte(b byte) {
	if sh.lineLen >= LineBufSize-1 {
		return
	}
	copy(sh.line[sh.cursor+1:sh.lineLen+1], sh.line[sh.cursor:sh.lineLen])
	sh.line[sh.cursor] = b
	sh.lineLen++
	sh.cursor++
	if sh.echo {
		sh.RedrawLine()
	}
}

// InsertText inserts text at the cursor, truncating to the buffer's
// remaining capacity, and redraws. Useful from completion and key-binding
// callbacks.
func (sh *Shell) InsertText(text string) {
	n := len(text)
	if sh.lineLen+n >= LineBufSize {
		n = LineBufSize - 1 - sh.lineLen
	}
	if n <= 0 {
		return
	}
	copy(sh.line[sh.cursor+n:sh.lineLen+n], sh.line[sh.cursor:sh.lineLen])
	copy(sh.line[sh.cursor:], text[:n])
	sh.lineLen += n
	sh.cursor += n
	sh.RedrawLine()
}

func (sh *Shell) backspace() {
	if sh.cursor == 0 {
		return
	}
	copy(sh.line[sh.cursor-1:], sh.line[sh.cursor:sh.lineLen])
	sh.lineLen--
	sh.cursor--
	sh.RedrawLine()
}

func (sh *Shell) deleteAtCursor() {
	if sh.cursor >= sh.lineLen {
		return
	}
	copy(sh.line[sh.cursor:], sh.line[sh.cursor+1:sh.lineLen])
	sh.lineLen--
	sh.RedrawLine()
}

// kill replaces the kill buffer with line[start:end) and removes that span.
// Each kill overwrites, never appends.
func (sh *Shell) kill(start, end int) {
	sh.killLen = copy(sh.killBuf[:], sh.line[start:end])
	copy(sh.line[start:], sh.line[end:sh.lineLen])
	sh.lineLen -= end - start
	sh.cursor = start
	sh.RedrawLine()
}

func (sh *Shell) killToEnd() {
	if sh.cursor < sh.lineLen {
		sh.kill(sh.cursor, sh.lineLen)
	}
}

func (sh *Shell) killToStart() {
	if sh.cursor > 0 {
		sh.kill(0, sh.cursor)
	}
}

// killWordBack cuts the word immediately left of the cursor: trailing
// whitespace first, then the non-whitespace run before it.
func (sh *Shell) killWordBack() {
	if sh.cursor == 0 {
		return
	}
	start := sh.cursor
	for start > 0 && isSpace(sh.line[start-1]) {
		start--
	}
	for start > 0 && !isSpace(sh.line[start-1]) {
		start--
	}
	if start < sh.cursor {
		sh.kill(start, sh.cursor)
	}
}

// transpose swaps the character at the cursor with the one before it. At
// end of line the position is stepped back first, so the last pair is
// swapped rather than nothing.
func (sh *Shell) transpose() {
	if sh.cursor == 0 || sh.lineLen < 2 {
		return
	}
	pos := sh.cursor
	if pos == sh.lineLen {
		pos--
	}
	if pos > 0 {
		sh.line[pos], sh.line[pos-1] = sh.line[pos-1], sh.line[pos]
		sh.RedrawLine()
	}
}

func (sh *Shell) historyPrev() {
	if entry, ok := sh.hist.prev(sh.line[:sh.lineLen]); ok {
		sh.setLine(entry)
	}
}

func (sh *Shell) historyNext() {
	if entry, ok := sh.hist.next(); ok {
		sh.setLine(entry)
	}
}

// setLine overwrites the live line, places the cursor at the end and
// redraws.
func (sh *Shell) setLine(text []byte) {
	sh.lineLen = copy(sh.line[:LineBufSize-1], text)
	sh.cursor = sh.lineLen
	sh.RedrawLine()
}

// resetLine empties the buffer and abandons any history traversal.
func (sh *Shell) resetLine() {
	sh.lineLen = 0
	sh.cursor = 0
	sh.hist.stopBrowsing()
}

// execLine submits the current line: record it, tokenize, dispatch through
// the trie, reprompt. An empty line just reprompts.
func (sh *Shell) execLine() {
	sh.puts("\r\n")
	if sh.lineLen == 0 {
		sh.showPrompt()
		return
	}

	line := string(sh.line[:sh.lineLen])
	sh.hist.add(line)

	argc := tokenize(line, sh.argv[:])
	if argc == 0 {
		sh.showPrompt()
		return
	}
	args := sh.argv[:argc]

	if idx := sh.trie.lookup(args[0]); idx >= 0 && int(idx) < len(sh.table) {
		cmd := &sh.table[idx]
		if cmd.Fn != nil {
			cmd.Fn(args, cmd.Data)
		}
	} else {
		sh.puts("Command not found\r\n")
	}

	sh.showPrompt()
}

// RedrawLine repaints the prompt and buffer in place: carriage return,
// clear to end of line, prompt, buffer, then cursor reposition.
func (sh *Shell) RedrawLine() {
	sh.putByte('\r')
	sh.puts(ansiClearToEOL)
	sh.showPrompt()
	sh.w.Write(sh.line[:sh.lineLen])
	sh.repositionCursor()
}

// repositionCursor moves the terminal cursor to prompt width + cursor
// offset with an absolute forward move from column 0.
func (sh *Shell) repositionCursor() {
	sh.putByte('\r')
	col := sh.cursor + len(sh.prompt)
	if col > 0 {
		sh.puts("\x1b[")
		sh.putUint(col)
		sh.putByte('C')
	}
}

// ClearScreen clears the terminal and repaints the prompt and line.
func (sh *Shell) ClearScreen() {
	sh.puts(ansiClearScreen)
	sh.puts(ansiCursorHome)
	sh.RedrawLine()
}

// Beep emits the terminal alert byte.
func (sh *Shell) Beep() {
	sh.putByte(bel)
}
