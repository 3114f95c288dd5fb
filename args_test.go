package tinysh

import "testing"

func TestTokenize(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"ls", []string{"ls"}},
		{"ls -la /tmp", []string{"ls", "-la", "/tmp"}},
		{"  cmd   arg  ", []string{"cmd", "arg"}},
		{"cmd\targ", []string{"cmd", "arg"}},
		{`cmd "a b" c`, []string{"cmd", "a b", "c"}},
		{`cmd ""`, []string{"cmd", ""}},
		{`"quoted cmd" arg`, []string{"quoted cmd", "arg"}},
		{`cmd "unterminated span`, []string{"cmd", "unterminated span"}},
		{`say "hi"there`, []string{"say", "hi", "there"}},
	}
	for _, tc := range cases {
		var argv [MaxArgs]string
		argc := tokenize(tc.line, argv[:])
		if argc != len(tc.want) {
			t.Errorf("tokenize(%q) argc = %d, want %d (%v)", tc.line, argc, len(tc.want), argv[:argc])
			continue
		}
		for i, w := range tc.want {
			if argv[i] != w {
				t.Errorf("tokenize(%q) argv[%d] = %q, want %q", tc.line, i, argv[i], w)
			}
		}
	}
}

func TestTokenizeCapsAtArgvLen(t *testing.T) {
	var argv [MaxArgs]string
	argc := tokenize("a b c d e f g h i j", argv[:])
	if argc != MaxArgs {
		t.Errorf("argc = %d, want %d", argc, MaxArgs)
	}
	if argv[MaxArgs-1] != "h" {
		t.Errorf("last kept arg = %q, want %q", argv[MaxArgs-1], "h")
	}
}
