package normalize

import (
	"slices"
	"strings"

	"github.com/vvka-141/synclean/pkg/synclean"
)

// Stage identifies a normalization step that changed a name.
type Stage int

const (
	StageEncoding Stage = iota
	StageEdgeSpaces
	StageTrailingPeriods
	StageForbiddenChars
	StageReservedName
	StageLength
	StageUnderscores
	StagePlaceholder
)

// Note is the operator-facing description of a stage.
func (s Stage) Note() string {
	switch s {
	case StageEncoding:
		return "Non-portable characters detected, re-encoding"
	case StageEdgeSpaces:
		return "Leading or trailing spaces detected, removing"
	case StageTrailingPeriods:
		return "Ending points detected, removing"
	case StageForbiddenChars:
		return "Forbidden characters detected, replacing"
	case StageReservedName:
		return "Found unauthorized name, prefixing"
	case StageLength:
		return "Found name which is too long, shortening"
	case StageUnderscores:
		return "Consecutive underscores detected, collapsing"
	case StagePlaceholder:
		return "Name is empty after cleanup, using placeholder"
	default:
		return "unknown stage"
	}
}

// Result is a candidate name and the stages that produced it.
type Result struct {
	Name   string
	Stages []Stage
}

// Changed reports whether any stage altered the name.
func (r Result) Changed() bool { return len(r.Stages) > 0 }

// Normalizer applies Rules under one Policy. The policy is resolved to an
// encoder once, at construction.
type Normalizer struct {
	rules  Rules
	policy synclean.Policy
	encode encoder
}

// New creates a Normalizer for policy.
func New(policy synclean.Policy, rules Rules) *Normalizer {
	n := &Normalizer{rules: rules, policy: policy}
	switch policy {
	case synclean.PolicyAccentStrip:
		n.encode = stripToASCII
	default:
		n.encode = keepUnicode
	}
	return n
}

// Policy returns the policy the normalizer was built for.
func (n *Normalizer) Policy() synclean.Policy { return n.policy }

// Normalize computes the candidate for name. outsidePartition disables the
// underscore collapse. The only error is synclean.ErrEncoding.
func (n *Normalizer) Normalize(name string, outsidePartition bool) (Result, error) {
	var res Result
	step := func(stage Stage, next string) {
		if next == res.Name {
			return
		}
		if !slices.Contains(res.Stages, stage) {
			res.Stages = append(res.Stages, stage)
		}
		res.Name = next
	}

	encoded, err := n.encode(name)
	if err != nil {
		return Result{Name: name}, err
	}
	res.Name = name
	step(StageEncoding, encoded)

	n.trimEdges(&res, step)

	if n.policy == synclean.PolicyBlacklist {
		step(StageForbiddenChars, n.replaceForbidden(res.Name))
	}

	if n.rules.IsReserved(res.Name) {
		step(StageReservedName, n.rules.ReservedPrefix+res.Name)
	}

	if n.rules.MaxLength > 0 {
		if r := []rune(res.Name); len(r) > n.rules.MaxLength {
			step(StageLength, string(r[:n.rules.MaxLength]))
			// the cut may expose a trailing space or period, and trimming
			// those can leave a bare device name behind
			n.trimEdges(&res, step)
			if n.rules.IsReserved(res.Name) {
				step(StageReservedName, n.rules.ReservedPrefix+res.Name)
			}
		}
	}

	if !outsidePartition {
		step(StageUnderscores, collapse(res.Name, n.rules.Replacement))
	}

	if res.Name == "" {
		step(StagePlaceholder, n.rules.Placeholder)
	}

	return res, nil
}

// trimEdges removes leading and trailing spaces and trailing periods. Spaces
// and periods are stripped alternately until the name ends in neither, so
// "notes.txt. " loses its space first and then its period.
func (n *Normalizer) trimEdges(res *Result, step func(Stage, string)) {
	step(StageEdgeSpaces, strings.TrimLeft(res.Name, " "))
	for {
		before := res.Name
		step(StageEdgeSpaces, strings.TrimRight(res.Name, " "))
		step(StageTrailingPeriods, strings.TrimRight(res.Name, "."))
		if res.Name == before {
			return
		}
	}
}

func (n *Normalizer) replaceForbidden(name string) string {
	if !strings.ContainsAny(name, n.rules.Forbidden) {
		return name
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(n.rules.Forbidden, r) {
			return n.rules.Replacement
		}
		return r
	}, name)
}

func collapse(name string, r rune) string {
	double := string([]rune{r, r})
	single := string(r)
	for strings.Contains(name, double) {
		name = strings.ReplaceAll(name, double, single)
	}
	return name
}
