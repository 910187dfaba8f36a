package mutate

// Operators is the token set used for insertion and flips, in the order
// candidates are drawn from.
var Operators = []string{
	"+", "-", "/", "*", "%", "**", "==", "!=", "<", ">", "<=", ">=", "^", "|", "&", "<<", ">>",
}

// SubstitutionOrder is the order operators are searched for during
// substitution. The first operator found in the seed is the one replaced.
var SubstitutionOrder = []string{
	"+", "-", "*", "/", "%", "**", "==", "!=", "<", ">", "<=", ">=", "&", "|", "^", "<<", ">>",
}

const (
	asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	asciiDigits  = "0123456789"
)

// Alphabet holds every insertion candidate: single letters, single digits
// and whole operator tokens.
var Alphabet = buildAlphabet()

func buildAlphabet() []string {
	out := make([]string, 0, len(asciiLetters)+len(asciiDigits)+len(Operators))
	for _, r := range asciiLetters + asciiDigits {
		out = append(out, string(r))
	}
	return append(out, Operators...)
}

// InAlphabet reports whether tok is an insertion candidate.
func InAlphabet(tok string) bool {
	for _, a := range Alphabet {
		if a == tok {
			return true
		}
	}
	return false
}
