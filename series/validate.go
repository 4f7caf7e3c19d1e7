package series

import (
	verrors "github.com/Conqxeror/veloxx/errors"
	"github.com/Conqxeror/veloxx/value"
)

func requireLen(s *Series, n int) error {
	if s.len != n {
		return verrors.LengthMismatch{Name: s.name, Expected: n, Actual: s.len}
	}
	return nil
}

func requireType(s *Series, dt value.DataType) error {
	if s.dtype != dt {
		return verrors.TypeMismatch{Message: "series " + s.name + " is " + s.dtype.String() + ", expected " + dt.String()}
	}
	return nil
}

func requireNumeric(s *Series) error {
	if !s.dtype.IsNumeric() {
		return verrors.TypeMismatch{Message: "series " + s.name + " is " + s.dtype.String() + ", expected a numeric type"}
	}
	return nil
}
