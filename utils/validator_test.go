package utils

import (
	"strings"
	"testing"
)

func TestIsStrongPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		want     bool
	}{
		{"Passw0rd", true},
		{"password1", false},
		{"PASSWORD1", false},
		{"Password", false},
		{"Pa1", false},
	}
	for _, tt := range tests {
		if got := IsStrongPassword(tt.password); got != tt.want {
			t.Errorf("IsStrongPassword(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}

type signup struct {
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required,password"`
	Glasses  int    `json:"glasses" validate:"gte=0,lte=20"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	if err := ValidateStruct(&signup{Phone: "+91 98765-43210", Password: "Secret123", Glasses: 8}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	err := ValidateStruct(&signup{Phone: "12345", Password: "weak", Glasses: 21})
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"phone", "password", "glasses"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err.Error(), field)
		}
	}
}
