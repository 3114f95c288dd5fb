package pathcomp

import (
	"strings"
	"time"

	"github.com/lowbyte-dev/tinysh"
)

// Completer completes the last word of the line as a filesystem path once
// the command name is finished (the line contains a space). Before that it
// defers to the shell's built-in command-name completion, so installing it
// via SetComplete loses nothing.
type Completer struct {
	dirs *DirCache
}

// NewCompleter creates a Completer with its own listing cache.
func NewCompleter(ttl time.Duration) *Completer {
	return &Completer{dirs: NewDirCache(ttl)}
}

// Close releases the listing cache.
func (c *Completer) Close() {
	c.dirs.Close()
}

// Complete implements tinysh.CompleteFunc.
func (c *Completer) Complete(sh *tinysh.Shell, line string) {
	if sh.Cursor() != len(line) {
		sh.Beep()
		return
	}
	space := strings.LastIndexByte(line, ' ')
	if space < 0 {
		sh.CompleteDefault()
		return
	}
	word := line[space+1:]

	dir, prefix := splitWord(word)
	matches := matchNames(c.dirs.Listing(dir), prefix)

	switch len(matches) {
	case 0:
		sh.Beep()

	case 1:
		suffix := matches[0][len(prefix):]
		if !strings.HasSuffix(matches[0], "/") {
			suffix += " "
		}
		sh.InsertText(suffix)

	default:
		common := matches[0]
		for _, m := range matches[1:] {
			common = commonPrefix(common, m)
		}
		if len(common) > len(prefix) {
			sh.InsertText(common[len(prefix):])
		} else {
			sh.Beep()
		}
	}
}

// splitWord separates word into the directory to list and the name prefix to
// match. A word without a slash completes in the current directory.
func splitWord(word string) (dir, prefix string) {
	slash := strings.LastIndexByte(word, '/')
	if slash < 0 {
		return ".", word
	}
	if slash == 0 {
		return "/", word[1:]
	}
	return word[:slash], word[slash+1:]
}

// matchNames returns the names extending prefix. Dotfiles are hidden unless
// the prefix itself starts with a dot.
func matchNames(names []string, prefix string) []string {
	var out []string
	for _, name := range names {
		if len(name) <= len(prefix) || !strings.HasPrefix(name, prefix) {
			continue
		}
		if prefix == "" && strings.HasPrefix(name, ".") {
			continue
		}
		out = append(out, name)
	}
	return out
}

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
