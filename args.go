package tinysh

// tokenize splits line into at most len(argv) arguments, honoring
// double-quoted spans: a quote opens a token that ends at the next quote
// (or end of line when unterminated), unquoted tokens end at whitespace.
// Returns the number of arguments produced.
func tokenize(line string, argv []string) int {
	argc := 0
	i := 0
	for argc < len(argv) {
		for i < len(line) && isSpace(line[i]) {
			i++
		}
		if i >= len(line) {
			break
		}
		if line[i] == '"' {
			i++
			start := i
			for i < len(line) && line[i] != '"' {
				i++
			}
			argv[argc] = line[start:i]
			argc++
			if i < len(line) {
				i++ // closing quote
			}
		} else {
			start := i
			for i < len(line) && !isSpace(line[i]) {
				i++
			}
			argv[argc] = line[start:i]
			argc++
		}
	}
	return argc
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}
