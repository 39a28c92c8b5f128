package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/sethgrid/bolita/internal/pet"
)

type Verb string

const (
	VerbFeed   Verb = "feed"
	VerbPlay   Verb = "play"
	VerbClean  Verb = "clean"
	VerbSleep  Verb = "sleep"
	VerbStatus Verb = "status"
	VerbHelp   Verb = "help"
	VerbQuit   Verb = "quit"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrAmbiguous      = errors.New("ambiguous command")
)

// How an input was matched to a verb.
const (
	SourceExact  = "exact"
	SourcePrefix = "prefix"
	SourceFuzzy  = "lev"
)

type Command struct {
	Verb  Verb
	Input string
	// Source is SourceExact, SourcePrefix or SourceFuzzy.
	Source string
}

// Corrected reports whether the verb was guessed from a typo, in which
// case callers should tell the user what was understood.
func (c Command) Corrected() bool { return c.Source == SourceFuzzy }

// Action maps the command to a pet action, if it is one.
func (c Command) Action() (pet.Action, bool) {
	switch c.Verb {
	case VerbFeed:
		return pet.ActionFeed, true
	case VerbPlay:
		return pet.ActionPlay, true
	case VerbClean:
		return pet.ActionClean, true
	case VerbSleep:
		return pet.ActionSleep, true
	default:
		return "", false
	}
}

type definition struct {
	Verb    Verb
	Aliases []string
	Help    string
}

// Single letters match the panel legend: F, J, L, D.
var definitions = []definition{
	{Verb: VerbFeed, Aliases: []string{"f", "eat", "food"}, Help: "feed your pet"},
	{Verb: VerbPlay, Aliases: []string{"j", "game", "fetch"}, Help: "play (needs energy)"},
	{Verb: VerbClean, Aliases: []string{"l", "bath", "wash"}, Help: "give a bath"},
	{Verb: VerbSleep, Aliases: []string{"d", "nap", "rest"}, Help: "put to sleep"},
	{Verb: VerbStatus, Aliases: []string{"s", "stats"}, Help: "redraw the panel"},
	{Verb: VerbHelp, Aliases: []string{"h", "?"}, Help: "show this help"},
	{Verb: VerbQuit, Aliases: []string{"q", "exit"}, Help: "leave"},
}

type candidate struct {
	verb     Verb
	distance int
}

// Parse resolves one line of input. Exact names and aliases win, then
// unique prefixes of a verb, then the closest alias within a small edit
// distance.
func Parse(input string) (Command, error) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return Command{}, fmt.Errorf("%w: empty input", ErrUnknownCommand)
	}

	for _, d := range definitions {
		if in == string(d.Verb) {
			return Command{Verb: d.Verb, Input: input, Source: SourceExact}, nil
		}
		for _, alias := range d.Aliases {
			if in == alias {
				return Command{Verb: d.Verb, Input: input, Source: SourceExact}, nil
			}
		}
	}

	if len(in) >= 2 {
		var matches []Verb
		for _, d := range definitions {
			if strings.HasPrefix(string(d.Verb), in) {
				matches = append(matches, d.Verb)
			}
		}
		switch len(matches) {
		case 0:
		case 1:
			return Command{Verb: matches[0], Input: input, Source: SourcePrefix}, nil
		default:
			return Command{}, fmt.Errorf("%w: %q could be %s", ErrAmbiguous, input, joinVerbs(matches))
		}
	}

	// Fuzzy: short inputs are too noisy to correct.
	if len(in) < 3 {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, input)
	}

	var cands []candidate
	for _, d := range definitions {
		best := -1
		for _, phrase := range append([]string{string(d.Verb)}, d.Aliases...) {
			if len(phrase) < 3 {
				continue
			}
			dist := levenshtein.ComputeDistance(in, phrase)
			if dist > levenshteinLimit(len(phrase)) {
				continue
			}
			if best < 0 || dist < best {
				best = dist
			}
		}
		if best >= 0 {
			cands = append(cands, candidate{verb: d.Verb, distance: best})
		}
	}

	if len(cands) == 0 {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, input)
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].distance < cands[j].distance
	})
	if len(cands) > 1 && cands[0].distance == cands[1].distance {
		var tied []Verb
		for _, c := range cands {
			if c.distance == cands[0].distance {
				tied = append(tied, c.verb)
			}
		}
		return Command{}, fmt.Errorf("%w: %q could be %s", ErrAmbiguous, input, joinVerbs(tied))
	}

	return Command{Verb: cands[0].verb, Input: input, Source: SourceFuzzy}, nil
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func joinVerbs(verbs []Verb) string {
	parts := make([]string, len(verbs))
	for i, v := range verbs {
		parts[i] = string(v)
	}
	return strings.Join(parts, " or ")
}

// Help lists every command with its aliases.
func Help() string {
	var b strings.Builder
	for _, d := range definitions {
		fmt.Fprintf(&b, "  %-7s %-16s %s\n", d.Verb, strings.Join(d.Aliases, ", "), d.Help)
	}
	return b.String()
}
