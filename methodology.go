package zakat

import (
	"encoding/json"
	"fmt"
)

// Methodology selects the jurisprudential school whose rules decide the
// default eligibility of ambiguous asset types. It is immutable for the
// duration of one calculation.
type Methodology int

const (
	// Standard treats gold and silver as always zakatable, personal use included.
	Standard Methodology = iota
	// Hanafi matches Standard on metals: personal jewelry is zakatable.
	Hanafi
	// Shafi exempts personal-use jewelry unless the asset explicitly opts in.
	Shafi
)

func (m Methodology) String() string {
	switch m {
	case Standard:
		return "standard"
	case Hanafi:
		return "hanafi"
	case Shafi:
		return "shafi"
	default:
		return "unknown"
	}
}

// MarshalJSON persists the methodology by name.
func (m Methodology) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON reads a methodology by name.
func (m *Methodology) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseMethodology(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMethodology parses a string into a Methodology.
func ParseMethodology(s string) (Methodology, error) {
	switch s {
	case "standard", "":
		return Standard, nil
	case "hanafi":
		return Hanafi, nil
	case "shafi":
		return Shafi, nil
	default:
		return 0, fmt.Errorf("unknown methodology: %q", s)
	}
}
