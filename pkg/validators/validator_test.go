package validators

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestValidator_Validate(t *testing.T) {
	type body struct {
		Name string `validate:"required,min=2"`
	}

	v := NewValidator()

	if err := v.Validate(&body{Name: "ok"}); err != nil {
		t.Errorf("Valid struct returned error: %v", err)
	}

	err := v.Validate(&body{})
	if err == nil {
		t.Fatal("Invalid struct returned no error")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Got error type %T, want *echo.HTTPError", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("Got status %d, want %d", httpErr.Code, http.StatusBadRequest)
	}
}
