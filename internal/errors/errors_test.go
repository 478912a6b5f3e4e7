package errors

import (
	stderrors "errors"
	"testing"
)

func TestConstructorsAttachCodes(t *testing.T) {
	cause := stderrors.New("boom")
	cases := []struct {
		err  error
		code string
	}{
		{Validation(cause), CodeValidationError},
		{NoSolution(cause), CodeNoSolution},
		{Numeric(cause), CodeCalculation},
		{ExportFailed(cause), CodeExport},
		{Storage(cause), CodeDatabaseError},
		{ConfigInvalid("bad"), CodeConfigInvalid},
		{NotFound("thing"), CodeNotFound},
		{InvalidInput("bad"), CodeInvalidInput},
	}
	for _, c := range cases {
		if got := GetCode(c.err); got != c.code {
			t.Errorf("expected code %s, got %s", c.code, got)
		}
	}
}

func TestConstructorsPassNilThrough(t *testing.T) {
	if Storage(nil) != nil {
		t.Errorf("Storage(nil) must stay nil")
	}
	if ExportFailed(nil) != nil {
		t.Errorf("ExportFailed(nil) must stay nil")
	}
}

func TestWrapKeepsExistingCode(t *testing.T) {
	err := Wrap(NoSolution(stderrors.New("range exhausted")), "sweep cell failed")
	if GetCode(err) != CodeNoSolution {
		t.Errorf("wrapping must preserve the inner code, got %s", GetCode(err))
	}
	if !stderrors.Is(err, err.(*AppError).Cause) {
		t.Errorf("cause must unwrap")
	}
}

func TestGetCodeOnPlainError(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "UNKNOWN" {
		t.Errorf("expected UNKNOWN, got %s", got)
	}
}
