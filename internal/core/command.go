package core

import "math/rand/v2"

// CommandKind describes how a client posts its next message.
type CommandKind int

const (
	// CommandSay appends literal text in one step.
	CommandSay CommandKind = iota
	// CommandType types the message character by character before posting it.
	CommandType
)

// Command represents the next message a client wants to post.
// For CommandType a nil Source types Text literally.
type Command struct {
	Kind   CommandKind
	Text   string
	Source CharSource
}

func (c Command) source() CharSource {
	if c.Source != nil {
		return c.Source
	}
	return LiteralSource(c.Text)
}

// Composer produces the commands a client executes, one per loop iteration.
// Composers are owned by a single client and need not be safe for concurrent use.
type Composer interface {
	Next() Command
}

// RandomComposer types random words, the way the demo participants chat.
type RandomComposer struct {
	Letters  int
	Alphabet string
	rng      *rand.Rand
}

// NewRandomComposer returns a composer typing words of the given length.
// A nil rng uses the package-level generator.
func NewRandomComposer(letters int, alphabet string, rng *rand.Rand) *RandomComposer {
	return &RandomComposer{Letters: letters, Alphabet: alphabet, rng: rng}
}

func (c *RandomComposer) Next() Command {
	return Command{Kind: CommandType, Source: RandomLetters(c.Letters, c.Alphabet, c.rng)}
}

// ScriptComposer cycles through a fixed list of lines.
type ScriptComposer struct {
	lines []string
	kind  CommandKind
	next  int
}

// NewScriptComposer returns a composer that posts lines in order and starts
// over after the last one. kind selects whether lines are said or typed.
func NewScriptComposer(lines []string, kind CommandKind) *ScriptComposer {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return &ScriptComposer{lines: cp, kind: kind}
}

func (c *ScriptComposer) Next() Command {
	if len(c.lines) == 0 {
		return Command{Kind: c.kind}
	}
	line := c.lines[c.next%len(c.lines)]
	c.next++
	return Command{Kind: c.kind, Text: line}
}
