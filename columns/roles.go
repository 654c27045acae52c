// Package columns describes which source columns of a GWAS summary statistics
// file carry which meaning.
package columns

import (
	"fmt"
	"sort"
	"strings"
)

// Role is the semantic meaning of a column.
type Role int

const (
	SNP Role = iota
	EffectAllele
	NonEffectAllele
	Chromosome
	Position
	Beta
	BetaSign
	SE
	OR
	Zscore
	Frequency
	PValue

	numRoles
)

var roleNames = [numRoles]string{
	SNP:             "snp",
	EffectAllele:    "effect_allele",
	NonEffectAllele: "non_effect_allele",
	Chromosome:      "chromosome",
	Position:        "position",
	Beta:            "beta",
	BetaSign:        "beta_sign",
	SE:              "se",
	OR:              "or",
	Zscore:          "zscore",
	Frequency:       "freq",
	PValue:          "pvalue",
}

func (r Role) String() string {
	if r < 0 || r >= numRoles {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// AllRoles lists every role in declaration order.
func AllRoles() []Role {
	out := make([]Role, 0, numRoles)
	for r := Role(0); r < numRoles; r++ {
		out = append(out, r)
	}
	return out
}

// Required roles must be declared for any run.
var Required = []Role{SNP, EffectAllele, NonEffectAllele}

// Mask is a bitset of roles.
type Mask uint16

// MaskOf builds a Mask from roles.
func MaskOf(roles ...Role) Mask {
	var m Mask
	for _, r := range roles {
		m |= 1 << uint(r)
	}
	return m
}

// Has reports whether every role in other is also in m.
func (m Mask) Has(other Mask) bool {
	return m&other == other
}

// Roles lists the roles present in m.
func (m Mask) Roles() []Role {
	out := make([]Role, 0)
	for r := Role(0); r < numRoles; r++ {
		if m&(1<<uint(r)) != 0 {
			out = append(out, r)
		}
	}
	return out
}

func (m Mask) String() string {
	names := make([]string, 0)
	for _, r := range m.Roles() {
		names = append(names, r.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Roles maps roles to source column names. The zero value declares nothing.
// Roles is a value type; copies are independent.
type Roles struct {
	names [numRoles]string
}

// With returns a copy of r with role bound to column. An empty column
// undeclares the role.
func (r Roles) With(role Role, column string) Roles {
	r.names[role] = strings.TrimSpace(column)
	return r
}

// Column returns the source column bound to role.
func (r Roles) Column(role Role) (string, bool) {
	name := r.names[role]
	return name, name != ""
}

// Declared returns the set of roles with a column bound.
func (r Roles) Declared() Mask {
	var m Mask
	for role, name := range r.names {
		if name != "" {
			m |= 1 << uint(role)
		}
	}
	return m
}

// Columns returns the distinct source column names that have been declared, in
// lexical order.
func (r Roles) Columns() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, name := range r.names {
		if _, exists := seen[name]; name == "" || exists {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Merge returns r with every role declared in override replaced.
func (r Roles) Merge(override Roles) Roles {
	for role, name := range override.names {
		if name != "" {
			r.names[role] = name
		}
	}
	return r
}

func (r Roles) String() string {
	parts := make([]string, 0)
	for role, name := range r.names {
		if name != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", Role(role), name))
		}
	}
	return strings.Join(parts, " ")
}
