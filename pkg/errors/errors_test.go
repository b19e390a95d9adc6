package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeInvalidDiscountCode, status: http.StatusUnprocessableEntity, publicMsg: "invalid or expired code"},
		{code: CodeNoDiscountOffered, status: http.StatusUnprocessableEntity, publicMsg: "this code offers no discount"},
		{code: CodeDiscountNotApplicable, status: http.StatusUnprocessableEntity, publicMsg: "this code does not apply to items in your cart", detailsOK: true},
		{code: CodeOrderNumberUnavailable, status: http.StatusServiceUnavailable, publicMsg: "order number service unavailable", retryable: true},
		{code: CodeOrderPartiallySubmitted, status: http.StatusInternalServerError, publicMsg: "order recorded without its items", detailsOK: true},
		{code: CodeOrderSubmissionFailed, status: http.StatusServiceUnavailable, publicMsg: "order could not be placed", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "foo"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsAndHasCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeNoDiscountOffered, "zero percent"))
	if got := As(err); got == nil || got.Code() != CodeNoDiscountOffered {
		t.Fatalf("As failed to return typed error")
	}
	if !HasCode(err, CodeNoDiscountOffered) {
		t.Fatalf("expected HasCode to match")
	}
	if HasCode(err, CodeValidation) {
		t.Fatalf("HasCode matched the wrong code")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeDependency, stdErrors.New("connection refused"), "load offer")
	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected two chain entries, got %d", len(dump.Chain))
	}
}

func TestPostgresErrorFromPgx(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "client_products_client_product_variant_key"})
	pg, ok := PostgresError(err)
	if !ok {
		t.Fatalf("expected postgres error to be detected")
	}
	if pg.Code != "23505" || pg.Constraint != "client_products_client_product_variant_key" {
		t.Fatalf("unexpected pg fields %+v", pg)
	}
	if _, ok := PostgresError(stdErrors.New("plain")); ok {
		t.Fatalf("plain error should not be reported as postgres")
	}
}
