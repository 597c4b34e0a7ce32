package mderror

import "testing"

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"no line no details", New(UnknownName), "unknown name"},
		{"with line", At(DuplicatedName, 7), "line 7. duplicated name"},
		{"with details", WithDetails(UnknownName, 3, "foo"), "line 3. unknown name ('foo')"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := At(DivisionByZero, 1)
	if !Is(err, DivisionByZero) {
		t.Errorf("Is() should report DivisionByZero")
	}
	if Is(err, UnknownName) {
		t.Errorf("Is() should not report UnknownName")
	}
}
