package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"new", New(ErrCodeParse, "node %s has no sequence", "n3"), "PARSE_ERROR: node n3 has no sequence"},
		{"wrap", Wrap(ErrCodeWrite, fs.ErrPermission, "write nodes.json"), "WRITE_ERROR: write nodes.json: permission denied"},
		{"no args", New(ErrCodeLedger, "ledger is corrupt"), "LEDGER_ERROR: ledger is corrupt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrap_Unwraps(t *testing.T) {
	err := Wrap(ErrCodeParse, fs.ErrNotExist, "open P04637.graphml")

	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("errors.Is should see the cause")
	}
	if errors.Unwrap(err) != fs.ErrNotExist {
		t.Error("Unwrap should return the cause")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching", New(ErrCodeResolution, "no match"), ErrCodeResolution, true},
		{"other code", New(ErrCodeResolution, "no match"), ErrCodeDownload, false},
		{"outermost wins", Wrap(ErrCodeGeneration, New(ErrCodeTimeout, "inner"), "outer"), ErrCodeGeneration, true},
		{"inner not matched", Wrap(ErrCodeGeneration, New(ErrCodeTimeout, "inner"), "outer"), ErrCodeTimeout, false},
		{"fmt wrapped", fmt.Errorf("convert: %w", New(ErrCodeParse, "bad")), ErrCodeParse, true},
		{"plain", errors.New("plain"), ErrCodeParse, false},
		{"nil", nil, ErrCodeParse, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    Code
		message string
	}{
		{"coded", New(ErrCodeNotFound, "input file %q does not exist", "X.graphml"), ErrCodeNotFound, `input file "X.graphml" does not exist`},
		{"wrapped cause hidden", Wrap(ErrCodeDownload, errors.New("503"), "download P04637"), ErrCodeDownload, "download P04637"},
		{"plain", errors.New("plain error"), "", "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestGetCode_Nil(t *testing.T) {
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q", got)
	}
}
