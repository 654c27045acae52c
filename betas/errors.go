package betas

import (
	"fmt"

	"github.com/carbocation/gwasbetas/columns"
)

// NumericDerivationError reports that an input column cannot feed its formula
// at all, e.g. a p-value column with no usable value. Bad individual rows never
// produce this error; they become NaN.
type NumericDerivationError struct {
	Table  string
	Path   Path
	Role   columns.Role
	Column string
	Detail string
}

func (e *NumericDerivationError) Error() string {
	return fmt.Sprintf("%s: cannot derive %s from %s column %s: %s", e.Table, e.Path, e.Role, e.Column, e.Detail)
}
