package req

import (
	"net/http/httptest"
	"strings"
	"testing"

	"poplobby/internal/pkg/errs"
)

type payload struct {
	Text string `json:"text"`
}

func TestBindJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"hello"}`))
	r.Header.Set("Content-Type", "application/json")

	var dst payload
	if err := BindJSON(r, &dst); err != nil {
		t.Fatalf("BindJSON: %v", err)
	}
	if dst.Text != "hello" {
		t.Errorf("Text = %q", dst.Text)
	}
}

func TestBindJSONRejectsWrongContentType(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"hello"}`))
	r.Header.Set("Content-Type", "text/plain")

	var dst payload
	err := BindJSON(r, &dst)
	if err == nil || err.Code != errs.ErrUnsupportedMediaType {
		t.Fatalf("err = %v", err)
	}
}

func TestBindJSONRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"hello","extra":1}`))
	r.Header.Set("Content-Type", "application/json")

	var dst payload
	err := BindJSON(r, &dst)
	if err == nil || err.Code != errs.ErrInvalidJSONFormat {
		t.Fatalf("err = %v", err)
	}
}

func TestBindJSONRejectsTrailingContent(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":"a"}{"text":"b"}`))
	r.Header.Set("Content-Type", "application/json")

	var dst payload
	err := BindJSON(r, &dst)
	if err == nil || err.Code != errs.ErrExtraContentInBody {
		t.Fatalf("err = %v", err)
	}
}

func TestBindJSONRejectsMalformedBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"text":`))
	r.Header.Set("Content-Type", "application/json")

	var dst payload
	err := BindJSON(r, &dst)
	if err == nil || err.Code != errs.ErrInvalidJSONFormat {
		t.Fatalf("err = %v", err)
	}
}
