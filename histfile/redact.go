// Package histfile persists executed command lines across sessions. Lines
// are redacted on write so credentials typed at the prompt never reach disk.
package histfile

import (
	"bytes"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// plainVars are variable names whose values carry no secrets and stay
// readable in the history file.
var plainVars = map[string]bool{
	"HOME": true, "USER": true, "PWD": true, "OLDPWD": true,
	"SHELL": true, "PATH": true, "LANG": true, "TERM": true,
	"HOSTNAME": true, "LOGNAME": true, "TMPDIR": true,
	"COLUMNS": true, "LINES": true,
}

// shellParams are positional and special parameters that are never secrets.
var shellParams = map[string]bool{
	"?": true, "!": true, "#": true, "@": true, "*": true,
	"-": true, "$": true, "_": true,
	"0": true, "1": true, "2": true, "3": true, "4": true,
	"5": true, "6": true, "7": true, "8": true, "9": true,
}

// Redact rewrites line so that variable references and assignment values
// which may hold secrets are masked. The line is parsed as shell syntax;
// when it does not parse, a regex pass covers the same patterns.
func Redact(line string) string {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))
	prog, err := parser.Parse(strings.NewReader(line), "")
	if err != nil {
		return redactPatterns(line)
	}

	syntax.Walk(prog, func(node syntax.Node) bool {
		switch n := node.(type) {
		case *syntax.ParamExp:
			if n.Param != nil && !plainVars[n.Param.Value] && !shellParams[n.Param.Value] {
				n.Param.Value = "REDACTED"
			}
		case *syntax.Assign:
			if n.Name != nil && !plainVars[n.Name.Value] && n.Value != nil {
				n.Value.Parts = []syntax.WordPart{&syntax.Lit{Value: "***"}}
			}
		}
		return true
	})

	var buf bytes.Buffer
	printer := syntax.NewPrinter(syntax.Indent(0))
	if err := printer.Print(&buf, prog); err != nil {
		return redactPatterns(line)
	}
	return strings.TrimRight(buf.String(), "\n")
}

// RedactAll applies Redact to each line.
func RedactAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = Redact(l)
	}
	return out
}

var (
	reBraceVar  = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)
	reSimpleVar = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	reAssign    = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)=(\S+)`)
)

// redactPatterns is the fallback for lines that fail shell parsing.
func redactPatterns(line string) string {
	line = reBraceVar.ReplaceAllStringFunc(line, func(m string) string {
		name := reBraceVar.FindStringSubmatch(m)[1]
		if plainVars[name] || shellParams[name] {
			return m
		}
		return "${REDACTED}"
	})

	line = reSimpleVar.ReplaceAllStringFunc(line, func(m string) string {
		name := reSimpleVar.FindStringSubmatch(m)[1]
		if name == "REDACTED" { // masked by the brace pass already
			return m
		}
		if plainVars[name] || shellParams[name] {
			return m
		}
		return "$REDACTED"
	})

	line = reAssign.ReplaceAllStringFunc(line, func(m string) string {
		name := reAssign.FindStringSubmatch(m)[1]
		if plainVars[name] {
			return m
		}
		return name + "=***"
	})

	return line
}
