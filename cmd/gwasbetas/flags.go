package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/carbocation/gwasbetas"
	"github.com/carbocation/gwasbetas/columns"
)

// columnFlagName maps a role to its flag, e.g. effect_allele to
// effect-allele-column.
func columnFlagName(role columns.Role) string {
	return strings.ReplaceAll(role.String(), "_", "-") + "-column"
}

// declaredColumns starts from the named layout, if any, and lets each
// non-empty column flag override it. The layout's delimiter is returned as
// the default separator.
func declaredColumns(layout string, flags map[columns.Role]*string) (columns.Roles, rune, error) {
	var roles columns.Roles
	var sep rune

	if layout != "" {
		l, err := columns.LookupLayout(layout)
		if err != nil {
			return roles, 0, err
		}
		roles = l.Roles
		sep = l.Delimiter
	}

	explicit := columns.Roles{}
	for _, role := range columns.AllRoles() {
		if v, exists := flags[role]; exists && v != nil {
			explicit = explicit.With(role, *v)
		}
	}

	return roles.Merge(explicit), sep, nil
}

func parseSeparator(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "tab", `\t`, "\t":
		return '\t', nil
	case "comma", ",":
		return ',', nil
	case "space", "whitespace", " ":
		return gwasbetas.Whitespace, nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("separator %q is not tab, comma, space, or a single character", s)
	}
	r, _ := utf8.DecodeRuneInString(s)

	return r, nil
}
