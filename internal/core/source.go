package core

import "math/rand/v2"

// DefaultAlphabet is the set of letters random messages are drawn from.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CharSource yields the characters of a typed message one at a time.
// Len reports how many characters the source will produce.
type CharSource interface {
	Len() int
	Next() rune
}

type randomLetters struct {
	n        int
	alphabet []rune
	rng      *rand.Rand
}

// RandomLetters returns a source of n letters sampled uniformly from alphabet.
// A nil rng falls back to the package-level generator.
func RandomLetters(n int, alphabet string, rng *rand.Rand) CharSource {
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	return &randomLetters{n: n, alphabet: []rune(alphabet), rng: rng}
}

func (s *randomLetters) Len() int { return s.n }

func (s *randomLetters) Next() rune {
	if s.rng != nil {
		return s.alphabet[s.rng.IntN(len(s.alphabet))]
	}
	return s.alphabet[rand.IntN(len(s.alphabet))]
}

type literalSource struct {
	runes []rune
	pos   int
}

// LiteralSource types text rune by rune.
func LiteralSource(text string) CharSource {
	return &literalSource{runes: []rune(text)}
}

func (s *literalSource) Len() int { return len(s.runes) }

func (s *literalSource) Next() rune {
	if s.pos >= len(s.runes) {
		return 0
	}
	r := s.runes[s.pos]
	s.pos++
	return r
}
