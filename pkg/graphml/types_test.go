package graphml

import "testing"

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"absent", Value{}, ""},
		{"string", StringValue("PEPTIDE"), "PEPTIDE"},
		{"empty string", StringValue(""), ""},
		{"int", IntValue(42), "42"},
		{"negative int", IntValue(-3), "-3"},
		{"float", FloatValue(12.5), "12.5"},
		{"integral float", FloatValue(3), "3"},
		{"true", BoolValue(true), "true"},
		{"false", BoolValue(false), "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueInt(t *testing.T) {
	tests := []struct {
		name   string
		v      Value
		want   int
		wantOK bool
	}{
		{"absent", Value{}, 0, false},
		{"int", IntValue(3), 3, true},
		{"integral float", FloatValue(4), 4, true},
		{"fractional float", FloatValue(4.5), 0, false},
		{"numeric string", StringValue("12"), 12, true},
		{"text", StringValue("n/a"), 0, false},
		{"bool", BoolValue(true), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Int()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Int() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestValuePresent(t *testing.T) {
	if (Value{}).Present() {
		t.Error("zero Value should be absent")
	}
	if !StringValue("").Present() {
		t.Error("empty string value should still be present")
	}
}
