package tinysh

// Built-in tab completion over the loaded command table. It only engages
// when the cursor sits at end of line and the input holds no space yet,
// i.e. the user is still typing the command name; completing arguments is a
// host concern (see SetComplete).

// termWidth is the assumed terminal width for multi-column match listings.
const termWidth = 80

func (sh *Shell) tabComplete() {
	if sh.completeFn != nil {
		sh.completeFn(sh, sh.Line())
		return
	}
	sh.CompleteDefault()
}

// CompleteDefault runs the built-in command-name completion regardless of
// any SetComplete override. Completion callbacks can use it as a fallback
// when the input is still in the command-name position.
func (sh *Shell) CompleteDefault() {
	if sh.cursor != sh.lineLen {
		sh.Beep()
		return
	}
	line := sh.line[:sh.lineLen]
	for _, b := range line {
		if b == ' ' {
			sh.Beep()
			return
		}
	}

	// Matches are names with the input as a strict prefix.
	matchCount := 0
	lastMatch := -1
	var common string
	for i := range sh.table {
		name := sh.table[i].Name
		if !matchesPrefix(name, line) {
			continue
		}
		matchCount++
		lastMatch = i
		if matchCount == 1 {
			common = name
		} else {
			common = commonPrefix(common, name)
		}
	}

	switch {
	case matchCount == 0:
		sh.Beep()

	case matchCount == 1:
		// Single match: replace the line with the full name plus a space.
		sh.lineLen = copy(sh.line[:LineBufSize-2], sh.table[lastMatch].Name)
		sh.line[sh.lineLen] = ' '
		sh.lineLen++
		sh.cursor = sh.lineLen
		sh.RedrawLine()

	case len(common) > len(line):
		// Multiple matches sharing a longer prefix: insert the missing part.
		sh.InsertText(common[len(line):])

	default:
		sh.listMatches(line)
	}
}

// listMatches prints every matching name in fixed-width columns sized to
// the longest match, then repaints the prompt and line beneath.
func (sh *Shell) listMatches(line []byte) {
	sh.puts("\r\n")

	maxWidth := 0
	for i := range sh.table {
		if matchesPrefix(sh.table[i].Name, line) && len(sh.table[i].Name) > maxWidth {
			maxWidth = len(sh.table[i].Name)
		}
	}

	colWidth := maxWidth + 2
	numCols := termWidth / colWidth
	if numCols < 1 {
		numCols = 1
	}

	col := 0
	for i := range sh.table {
		name := sh.table[i].Name
		if !matchesPrefix(name, line) {
			continue
		}
		sh.puts(name)
		for p := len(name); p < colWidth; p++ {
			sh.putByte(' ')
		}
		col++
		if col >= numCols {
			sh.puts("\r\n")
			col = 0
		}
	}
	if col > 0 {
		sh.puts("\r\n")
	}

	sh.RedrawLine()
}

// matchesPrefix reports whether name starts with prefix and is strictly
// longer than it.
func matchesPrefix(name string, prefix []byte) bool {
	if len(name) <= len(prefix) {
		return false
	}
	for i := range prefix {
		if name[i] != prefix[i] {
			return false
		}
	}
	return true
}

// commonPrefix returns the longest common prefix of a and b.
func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
