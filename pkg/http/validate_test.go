package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type sampleRequest struct {
	Name  string   `json:"name" validate:"required"`
	Price *float64 `json:"price" validate:"required"`
	Set   string   `json:"set" default:"Unknown"`
}

func newContext(body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestReadAndValidateRequestDefaults(t *testing.T) {
	var req sampleRequest
	if errs := ReadAndValidateRequest(newContext(`{"name":"Sol Ring","price":0}`), &req); errs != nil {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if req.Set != "Unknown" {
		t.Fatalf("default not applied: %q", req.Set)
	}
	if req.Price == nil || *req.Price != 0 {
		t.Fatalf("zero price should be accepted")
	}
}

func TestReadAndValidateRequestMissingFields(t *testing.T) {
	var req sampleRequest
	errs := ReadAndValidateRequest(newContext(`{"set":"LEA"}`), &req)
	if len(errs) != 2 {
		t.Fatalf("want 2 errors, got %+v", errs)
	}
	if errs[0].Field != "name" || errs[0].Code != "ERR_REQUIRED" {
		t.Fatalf("unexpected first error %+v", errs[0])
	}
	if msg := FirstMessage(errs); msg != "name is required; price is required" {
		t.Fatalf("message = %q", msg)
	}
}

func TestReadAndValidateRequestMalformed(t *testing.T) {
	var req sampleRequest
	errs := ReadAndValidateRequest(newContext(`{"name":`), &req)
	if len(errs) != 1 || errs[0].Code != "ERR_BIND" {
		t.Fatalf("unexpected %+v", errs)
	}
}

func TestMapError(t *testing.T) {
	errGone := errors.New("gone")
	notFound := func(err error) *AppError {
		if errors.Is(err, errGone) {
			return NotFoundError("gone")
		}
		return nil
	}

	if got := MapError(fmt.Errorf("lookup: %w", errGone), notFound); got.Status != http.StatusNotFound {
		t.Fatalf("status = %d", got.Status)
	}
	if got := MapError(errors.New("boom"), notFound); got.Status != http.StatusInternalServerError || got.Code != CodeInternal {
		t.Fatalf("fallback = %+v", got)
	}
	wrapped := fmt.Errorf("ctx: %w", BadRequestError("bad"))
	if got := MapError(wrapped); got.Status != http.StatusBadRequest {
		t.Fatalf("existing AppError not kept: %+v", got)
	}
}
