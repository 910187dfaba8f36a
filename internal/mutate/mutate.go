package mutate

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Kind identifies a mutation strategy.
type Kind uint8

const (
	KindDelete Kind = iota
	KindInsert
	KindFlip
	KindStructure
	KindOperator

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindDelete:
		return "delete"
	case KindInsert:
		return "insert"
	case KindFlip:
		return "flip"
	case KindStructure:
		return "structure"
	case KindOperator:
		return "operator"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// ParseKind converts a name produced by Kind.String back to a Kind.
func ParseKind(s string) (Kind, error) {
	for k := range kindCount {
		if k.String() == strings.ToLower(strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("invalid mutation kind: %q (expected: delete|insert|flip|structure|operator)", s)
}

// Structural rewrites, chosen uniformly.
const (
	StructParen = iota
	StructAppendOne
	StructAbs
	StructStripParens

	structCount
)

// Mutator applies random mutations using its own random source.
type Mutator struct {
	rnd *rand.Rand
}

// New returns a Mutator drawing from rnd.
func New(rnd *rand.Rand) *Mutator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Mutator{rnd: rnd}
}

// Mutate picks one of the five kinds uniformly and applies it to seed.
func (m *Mutator) Mutate(seed string) (string, Kind) {
	k := Kind(m.rnd.IntN(int(kindCount)))
	return m.Apply(k, seed), k
}

// Apply applies a specific mutation kind.
func (m *Mutator) Apply(k Kind, seed string) string {
	switch k {
	case KindDelete:
		return m.Delete(seed)
	case KindInsert:
		return m.Insert(seed)
	case KindFlip:
		return m.Flip(seed)
	case KindStructure:
		return m.Structure(seed)
	case KindOperator:
		return m.SubstituteOperator(seed)
	default:
		return seed
	}
}

// Delete removes one character at a random index. Empty input is returned
// as is.
func (m *Mutator) Delete(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	i := m.rnd.IntN(len(r))
	return string(r[:i]) + string(r[i+1:])
}

// Insert places one alphabet token at a random character position, ends
// included.
func (m *Mutator) Insert(s string) string {
	tok := m.token()
	r := []rune(s)
	if len(r) == 0 {
		return tok
	}
	i := m.rnd.IntN(len(r) + 1)
	return string(r[:i]) + tok + string(r[i:])
}

// Flip replaces one character at a random index with a different alphabet
// token. Empty input is returned as is.
func (m *Mutator) Flip(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	i := m.rnd.IntN(len(r))
	tok := m.token()
	for tok == string(r[i]) {
		tok = m.token()
	}
	return string(r[:i]) + tok + string(r[i+1:])
}

// Structure applies one of the structural rewrites chosen uniformly.
func (m *Mutator) Structure(s string) string {
	return Restructure(m.rnd.IntN(structCount), s)
}

// Restructure applies the structural rewrite identified by which.
func Restructure(which int, s string) string {
	switch which {
	case StructParen:
		return "(" + s + ")"
	case StructAppendOne:
		return s + " + 1"
	case StructAbs:
		return "abs(" + s + ")"
	case StructStripParens:
		return strings.NewReplacer("(", "", ")", "").Replace(s)
	default:
		return s
	}
}

// SubstituteOperator finds the first operator of SubstitutionOrder present
// in s and replaces its first occurrence with a different operator.
// Input with none of the operators is returned unchanged.
func (m *Mutator) SubstituteOperator(s string) string {
	op, ok := FirstOperator(s)
	if !ok {
		return s
	}
	repl := SubstitutionOrder[m.rnd.IntN(len(SubstitutionOrder))]
	for repl == op {
		repl = SubstitutionOrder[m.rnd.IntN(len(SubstitutionOrder))]
	}
	return strings.Replace(s, op, repl, 1)
}

// FirstOperator returns the first operator of SubstitutionOrder that occurs
// in s.
func FirstOperator(s string) (string, bool) {
	for _, op := range SubstitutionOrder {
		if strings.Contains(s, op) {
			return op, true
		}
	}
	return "", false
}

func (m *Mutator) token() string {
	return Alphabet[m.rnd.IntN(len(Alphabet))]
}
