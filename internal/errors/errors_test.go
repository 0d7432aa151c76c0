package errors

import (
	stderrors "errors"
	"testing"
)

func TestWrapPreservesCode(t *testing.T) {
	err := Wrap(DatasetNotFound("ds-1"), "lookup failed")

	if GetCode(err) != CodeDatasetNotFound {
		t.Errorf("code = %q, want %q", GetCode(err), CodeDatasetNotFound)
	}
	if err.Error() != "lookup failed: dataset ds-1 not found" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("wrapping nil must return nil")
	}
}

func TestWrapPlainError(t *testing.T) {
	err := Wrap(stderrors.New("boom"), "operation failed")

	if GetCode(err) != CodeInternalError {
		t.Errorf("code = %q, want %q", GetCode(err), CodeInternalError)
	}
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeInvalidInput, stderrors.New("bad field"))

	if GetCode(err) != CodeInvalidInput {
		t.Errorf("code = %q, want %q", GetCode(err), CodeInvalidInput)
	}
}

func TestGetCodeUnknown(t *testing.T) {
	if GetCode(stderrors.New("plain")) != "UNKNOWN" {
		t.Error("plain errors must report UNKNOWN")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("io failure")
	err := ArtifactWrite("/tmp/out.csv", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is must see through AppError to the cause")
	}
}
