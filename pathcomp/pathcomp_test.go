package pathcomp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/lowbyte-dev/tinysh"
)

func newShell(t *testing.T) (*tinysh.Shell, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	sh, err := tinysh.New(&buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	sh.LoadTable([]tinysh.Command{{Name: "cat"}, {Name: "cd"}})
	return sh, &buf
}

func feed(t *testing.T, sh *tinysh.Shell, s string) {
	t.Helper()
	for i := 0; i < len(s); i++ {
		if !sh.Feed(s[i]) {
			t.Fatalf("Feed(%q) rejected", s[i])
		}
		for sh.Run() {
		}
	}
}

func populated(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"alpha.txt", "album.txt", "beta.txt", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "album.d"), 0o755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestDirCacheListing(t *testing.T) {
	dc := NewDirCache(0)
	defer dc.Close()

	dir := populated(t)
	names := dc.Listing(dir)
	want := map[string]bool{
		"alpha.txt": true, "album.txt": true, "beta.txt": true,
		".hidden": true, "album.d/": true,
	}
	if len(names) != len(want) {
		t.Fatalf("Listing = %v, want %d entries", names, len(want))
	}
	for _, n := range names {
		if !want[n] {
			t.Errorf("unexpected entry %q", n)
		}
	}
}

func TestDirCacheListingCached(t *testing.T) {
	dc := NewDirCache(time.Minute)
	defer dc.Close()

	dir := populated(t)
	dc.Listing(dir)
	// A new file does not appear until the entry expires.
	if err := os.WriteFile(filepath.Join(dir, "late.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	for _, n := range dc.Listing(dir) {
		if n == "late.txt" {
			t.Fatal("cached listing was re-read")
		}
	}
}

func TestDirCacheListingExpires(t *testing.T) {
	c := ttlcache.New[string, []string](
		ttlcache.WithTTL[string, []string](time.Millisecond),
		ttlcache.WithDisableTouchOnHit[string, []string](),
	)
	go c.Start()
	dc := &DirCache{cache: c}
	defer dc.Close()

	dir := populated(t)
	dc.Listing(dir)
	if err := os.WriteFile(filepath.Join(dir, "late.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(10 * time.Millisecond)

	found := false
	for _, n := range dc.Listing(dir) {
		if n == "late.txt" {
			found = true
		}
	}
	if !found {
		t.Error("expired listing was not re-read")
	}
}

func TestDirCacheUnreadableDir(t *testing.T) {
	dc := NewDirCache(0)
	defer dc.Close()
	if got := dc.Listing("/nonexistent/path"); got != nil {
		t.Errorf("Listing = %v, want nil", got)
	}
}

func TestCompleteSingleFile(t *testing.T) {
	dir := populated(t)
	c := NewCompleter(0)
	defer c.Close()

	sh, _ := newShell(t)
	sh.SetComplete(c.Complete)
	feed(t, sh, "cat "+dir+"/be\t")
	if got, want := sh.Line(), "cat "+dir+"/beta.txt "; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestCompleteDirectoryGetsSlashNoSpace(t *testing.T) {
	dir := populated(t)
	c := NewCompleter(0)
	defer c.Close()

	sh, _ := newShell(t)
	sh.SetComplete(c.Complete)
	feed(t, sh, "cd "+dir+"/album.d\t")
	if got, want := sh.Line(), "cd "+dir+"/album.d/"; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestCompleteCommonPrefix(t *testing.T) {
	dir := populated(t)
	c := NewCompleter(0)
	defer c.Close()

	sh, _ := newShell(t)
	sh.SetComplete(c.Complete)
	feed(t, sh, "cat "+dir+"/al\t")
	// alpha.txt, album.txt, album.d/ share "al"; no longer common prefix
	// than what was typed plus nothing, so check the next narrowing step.
	if got, want := sh.Line(), "cat "+dir+"/al"; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}

	feed(t, sh, "b\t")
	if got, want := sh.Line(), "cat "+dir+"/album."; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestCompleteNoMatchBeeps(t *testing.T) {
	dir := populated(t)
	c := NewCompleter(0)
	defer c.Close()

	sh, buf := newShell(t)
	sh.SetComplete(c.Complete)
	feed(t, sh, "cat "+dir+"/zz")
	buf.Reset()
	feed(t, sh, "\t")
	if got := buf.String(); got != "\x07" {
		t.Errorf("output = %q, want bell", got)
	}
}

func TestCompleteHidesDotfiles(t *testing.T) {
	dir := populated(t)
	c := NewCompleter(0)
	defer c.Close()

	sh, _ := newShell(t)
	sh.SetComplete(c.Complete)

	// Empty prefix skips dotfiles; an explicit dot includes them.
	feed(t, sh, "cat "+dir+"/.h\t")
	if got, want := sh.Line(), "cat "+dir+"/.hidden "; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestCompleteFirstWordFallsBack(t *testing.T) {
	c := NewCompleter(0)
	defer c.Close()

	sh, _ := newShell(t)
	sh.SetComplete(c.Complete)
	feed(t, sh, "ca\t")
	if got := sh.Line(); got != "cat " {
		t.Errorf("Line() = %q, want built-in command completion", got)
	}
}

func TestSplitWord(t *testing.T) {
	tests := []struct {
		word, dir, prefix string
	}{
		{"foo", ".", "foo"},
		{"", ".", ""},
		{"/etc/pas", "/etc", "pas"},
		{"/x", "/", "x"},
		{"a/b/c", "a/b", "c"},
		{"dir/", "dir", ""},
	}
	for _, tt := range tests {
		dir, prefix := splitWord(tt.word)
		if dir != tt.dir || prefix != tt.prefix {
			t.Errorf("splitWord(%q) = %q, %q, want %q, %q", tt.word, dir, prefix, tt.dir, tt.prefix)
		}
	}
}
