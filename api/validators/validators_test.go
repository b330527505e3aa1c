package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/huydhb/greenfarm-backend/pkg/errors"
)

type addItemBody struct {
	ProductID string   `json:"product_id" validate:"required"`
	Quantity  *float64 `json:"quantity,omitempty"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"xoai","quantity":2}`))
	var body addItemBody
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.ProductID != "xoai" || body.Quantity == nil || *body.Quantity != 2 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"product_id":"x","extra":true}`))
	var body addItemBody
	err := DecodeJSONBody(req, &body)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyValidates(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	var body addItemBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["product_id"] != "is required" {
		t.Fatalf("unexpected details %#v", typed.Details())
	}
}

func TestParseQueryHelpers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?min_price=1000&flag=true&bad=abc&n=5", nil)

	min, err := ParseQueryDecimal(req, "min_price")
	if err != nil || min == nil || min.IntPart() != 1000 {
		t.Fatalf("unexpected min %v err %v", min, err)
	}
	if absent, err := ParseQueryDecimal(req, "max_price"); err != nil || absent != nil {
		t.Fatalf("absent decimal should be nil, got %v %v", absent, err)
	}
	if _, err := ParseQueryDecimal(req, "bad"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	flag, err := ParseQueryBool(req, "flag", false)
	if err != nil || !flag {
		t.Fatalf("unexpected flag %v err %v", flag, err)
	}
	if def, _ := ParseQueryBool(req, "missing", true); !def {
		t.Fatal("expected default true")
	}
	if _, err := ParseQueryBool(req, "bad", false); err == nil {
		t.Fatal("expected bool parse error")
	}

	n, err := ParseQueryInt(req, "n", 1, 1, 10)
	if err != nil || n != 5 {
		t.Fatalf("unexpected int %d err %v", n, err)
	}
	if _, err := ParseQueryInt(req, "n", 1, 1, 3); err == nil {
		t.Fatal("expected range error")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  rau  ", 0); got != "rau" {
		t.Fatalf("unexpected %q", got)
	}
	if got := SanitizeString("Gà ta", 2); got != "G" {
		t.Fatalf("must not split runes, got %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("unexpected %q", got)
	}
}
