package normalize

import "github.com/vvka-141/synclean/pkg/synclean"

// Rules is the immutable rule set applied by a Normalizer. Construct it once
// with DefaultRules and pass it by value.
type Rules struct {
	// Forbidden lists the characters replaced by Replacement under the
	// blacklist policy.
	Forbidden string

	// Replacement substitutes each forbidden character.
	Replacement rune

	// Reserved holds device names that get ReservedPrefix prepended.
	// Matching is exact and case-sensitive.
	Reserved map[string]struct{}

	ReservedPrefix string

	// MaxLength is the longest result, counted in characters.
	MaxLength int

	// Placeholder replaces a result that would otherwise be empty.
	Placeholder string
}

// DefaultRules returns the OneDrive rule set.
func DefaultRules() Rules {
	reserved := map[string]struct{}{
		"AUX": {},
		"PRN": {},
		"NUL": {},
		"CON": {},
	}
	for _, prefix := range []string{"COM", "LPT"} {
		for d := '0'; d <= '9'; d++ {
			reserved[prefix+string(d)] = struct{}{}
		}
	}

	return Rules{
		Forbidden:      `~"#%&*:<>?/\{|},`,
		Replacement:    '_',
		Reserved:       reserved,
		ReservedPrefix: "_",
		MaxLength:      synclean.MaxNameLength,
		Placeholder:    synclean.Placeholder,
	}
}

// IsReserved reports whether name is one of the reserved device names.
func (r Rules) IsReserved(name string) bool {
	_, ok := r.Reserved[name]
	return ok
}
