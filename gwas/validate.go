package gwas

import (
	"fmt"
	"strings"

	"github.com/carbocation/gwasbetas/columns"
)

// ValidateBasic checks that every declared column exists in the table's header.
func ValidateBasic(t *Table, roles columns.Roles) error {
	missing := make([]columns.Role, 0)
	names := make([]string, 0)
	for _, role := range roles.Declared().Roles() {
		col, _ := roles.Column(role)
		if !t.HasColumn(col) {
			missing = append(missing, role)
			names = append(names, col)
		}
	}

	if len(missing) > 0 {
		return &columns.FormatError{
			Kind:   columns.ErrMissingColumns,
			Roles:  missing,
			Detail: fmt.Sprintf("%s: header has no %s", t.Name, strings.Join(names, ", ")),
		}
	}

	return nil
}

// ValidateStrict checks that the identifier and allele roles are declared and
// present, and that no row leaves them empty.
func ValidateStrict(t *Table, roles columns.Roles) error {
	if err := ValidateRequired(roles); err != nil {
		return err
	}

	if err := ValidateBasic(t, roles); err != nil {
		return err
	}

	for _, role := range columns.Required {
		col, _ := roles.Column(role)
		values, _ := t.Strings(col)
		for i, v := range values {
			if IsMissing(v) {
				return &columns.FormatError{
					Kind:   columns.ErrMissingColumns,
					Roles:  []columns.Role{role},
					Detail: fmt.Sprintf("%s: data row %d has no %s", t.Name, i+1, col),
				}
			}
		}
	}

	return nil
}

// ValidateRequired checks, without looking at any data, that the identifier
// and allele roles have been declared.
func ValidateRequired(roles columns.Roles) error {
	need := columns.MaskOf(columns.Required...)
	have := roles.Declared()
	if !have.Has(need) {
		return &columns.FormatError{
			Kind:   columns.ErrInsufficientColumns,
			Roles:  (need &^ have).Roles(),
			Detail: "identifier and allele columns must be declared",
		}
	}

	return nil
}
