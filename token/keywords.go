package token

var keywords = func() map[string]Kind {
	m := make(map[string]Kind, int(keywordEnd-keywordBeg))

	for k := keywordBeg + 1; k < keywordEnd; k++ {
		if k.IsKeyword() {
			m[kindNames[k]] = k
		}
	}

	return m
}()

// Lookup maps upper-cased identifier text to its keyword kind.
func Lookup(upper string) (Kind, bool) {
	k, ok := keywords[upper]
	return k, ok
}
