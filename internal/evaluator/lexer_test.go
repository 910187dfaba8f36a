package evaluator

import "testing"

func TestTokenizeKinds(t *testing.T) {
	toks, err := Tokenize("a**2 // b >= 'x\\'y' not in z")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []TokenKind{TokName, TokStarStar, TokInt, TokSlashSlash, TokName, TokGtEq, TokString, TokNot, TokIn, TokName, TokEOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d = %s, want %s", i, toks[i].Kind, k)
		}
	}
	if toks[6].Text != "x'y" {
		t.Errorf("string text = %q, want %q", toks[6].Text, "x'y")
	}
}

func TestTokenizeRejects(t *testing.T) {
	for _, src := range []string{"1a", "0x", "1e", "'abc", "a = 1", "a.b", "$", "007"} {
		if _, err := Tokenize(src); err == nil {
			t.Errorf("Tokenize(%q) succeeded", src)
		}
	}
}

func TestTokenizeReserved(t *testing.T) {
	toks, err := Tokenize("import")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[0].Kind != TokReserved {
		t.Errorf("kind = %s, want keyword", toks[0].Kind)
	}
}
