package validation

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestConfigValidator_Required(t *testing.T) {
	cv := NewConfigValidator("Config")
	cv.Required("File", "")

	if !cv.HasErrors() {
		t.Error("Expected error for empty required field")
	}

	cv2 := NewConfigValidator("Config")
	cv2.Required("File", "centralities.csv")

	if cv2.HasErrors() {
		t.Error("Expected no error for non-empty required field")
	}
}

func TestConfigValidator_Less(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  float64
		wantErr bool
	}{
		{"ordered", 0, 0.65, false},
		{"equal", 1, 1, true},
		{"reversed", 2, 1, true},
		{"nan", math.NaN(), 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("Axis").Less("X", tt.lo, tt.hi)
			if cv.HasErrors() != tt.wantErr {
				t.Errorf("Less(%v, %v) errors = %v, wantErr %v", tt.lo, tt.hi, cv.Errors(), tt.wantErr)
			}
		})
	}
}

func TestConfigValidator_FiniteAndPositive(t *testing.T) {
	cv := NewConfigValidator("Config").
		Finite("A", math.Inf(1)).
		Finite("B", 0.5).
		Positive("Width", 0).
		Positive("Height", 600)

	if len(cv.Errors()) != 2 {
		t.Fatalf("Expected 2 errors, got %d: %v", len(cv.Errors()), cv.Errors())
	}
	if !strings.Contains(cv.Errors()[0].Error(), "Config.A") {
		t.Errorf("first error should name Config.A: %v", cv.Errors()[0])
	}
}

func TestConfigValidator_OneOf(t *testing.T) {
	allowed := []string{"keep-last", "reject"}

	if NewConfigValidator("C").OneOf("Duplicates", "reject", allowed).HasErrors() {
		t.Error("Expected no error for allowed value")
	}
	if !NewConfigValidator("C").OneOf("Duplicates", "first", allowed).HasErrors() {
		t.Error("Expected error for disallowed value")
	}
}

func TestConfigValidator_CustomAndWhen(t *testing.T) {
	sentinel := errors.New("bad")

	cv := NewConfigValidator("C").
		Custom("Field", func() error { return sentinel }).
		When(false, func(cv *ConfigValidator) { cv.Required("Skipped", "") }).
		When(true, func(cv *ConfigValidator) { cv.Required("Checked", "") })

	err := cv.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !errors.Is(err, sentinel) {
		t.Errorf("Validate() should wrap custom errors, got %v", err)
	}
	if strings.Contains(err.Error(), "Skipped") {
		t.Errorf("When(false) should not apply validations: %v", err)
	}
	if !strings.Contains(err.Error(), "Checked") || !strings.Contains(err.Error(), "2 error(s)") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestConfigValidator_ValidateNoErrors(t *testing.T) {
	if err := NewConfigValidator("C").Required("A", "x").Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestDefaultOr(t *testing.T) {
	if DefaultOr("", "job_test") != "job_test" {
		t.Error("DefaultOr should return default for zero value")
	}
	if DefaultOr(3, 7) != 3 {
		t.Error("DefaultOr should keep non-zero value")
	}
}

type exportOptions struct {
	Width  int    `validate:"gt=0,lte=10000"`
	Format string `validate:"required,oneof=png svg pdf"`
}

func TestStruct(t *testing.T) {
	if err := Struct(&exportOptions{Width: 800, Format: "png"}); err != nil {
		t.Errorf("Struct(valid) = %v", err)
	}

	err := Struct(&exportOptions{Width: 0, Format: "gif"})
	if err == nil {
		t.Fatal("Expected error for invalid struct")
	}
	msg := err.Error()
	if !strings.Contains(msg, "exportOptions.Width: must be greater than 0") {
		t.Errorf("missing Width message: %s", msg)
	}
	if !strings.Contains(msg, "exportOptions.Format: must be one of [png svg pdf]") {
		t.Errorf("missing Format message: %s", msg)
	}

	if err := Struct(nil); err == nil {
		t.Error("Expected error for nil value")
	}
}
