package gen

import (
	"fmt"
	"strings"
)

// Policy controls how Generate populates an array.
type Policy int

const (
	// NoDuplicates yields 0, 1, ..., n-1.
	NoDuplicates Policy = iota + 1
	// Random yields n independent draws; collisions are possible but rare.
	Random
	// Near yields 0..n-1 with index 0 overwritten by the value at index 1.
	Near
	// Far yields 0..n-1 with index 0 overwritten by the value at index n-1.
	Far
	// FixedValueFalse fills every slot with one random value, so every
	// element collides with every other.
	FixedValueFalse
	// FixedValueTrue fills every slot with an independent random draw.
	FixedValueTrue
)

var policyNames = map[Policy]string{
	NoDuplicates:    "NoDuplicates",
	Random:          "Random",
	Near:            "Near",
	Far:             "Far",
	FixedValueFalse: "FixedValueFalse",
	FixedValueTrue:  "FixedValueTrue",
}

func (p Policy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	_, ok := policyNames[p]
	return ok
}

// Policies returns every known policy in declaration order.
func Policies() []Policy {
	return []Policy{NoDuplicates, Random, Near, Far, FixedValueFalse, FixedValueTrue}
}

// ParsePolicy resolves a policy name. Matching ignores case, dashes and
// underscores, so "no-duplicates" and "NoDuplicates" are the same policy.
func ParsePolicy(name string) (Policy, error) {
	key := normalize(name)
	for _, p := range Policies() {
		if normalize(p.String()) == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown policy %q", ErrInvalidConfiguration, name)
}

func normalize(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, "_", "")
}

// MarshalText encodes the policy by name.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: unknown policy %v", ErrInvalidConfiguration, p)
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a policy name accepted by ParsePolicy.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
