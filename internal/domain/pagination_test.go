package domain_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestDefaultPage(t *testing.T) {
	page := domain.DefaultPage()
	if page.Size != 10 || page.Number != 1 {
		t.Fatalf("unexpected defaults: %+v", page)
	}
	if err := page.Validate(); err != nil {
		t.Fatalf("default page must be valid: %v", err)
	}
	if page.Limit() != 10 || page.Offset() != 0 {
		t.Fatalf("unexpected limit/offset: %d/%d", page.Limit(), page.Offset())
	}
}

func TestPageValidate_Rejects(t *testing.T) {
	cases := []domain.Page{
		{Size: 0, Number: 1},
		{Size: -5, Number: 1},
		{Size: 5, Number: 0},
		{Size: 5, Number: -1},
	}

	for _, page := range cases {
		err := page.Validate()
		if err == nil {
			t.Fatalf("expected validation error for %+v", page)
		}
		if !errors.Is(err, domain.ErrInvalidPagination) {
			t.Fatalf("expected ErrInvalidPagination for %+v, got %v", page, err)
		}
	}
}

func TestPageOffset(t *testing.T) {
	page := domain.Page{Size: 25, Number: 3}
	if err := page.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if page.Limit() != 25 {
		t.Fatalf("unexpected limit: %d", page.Limit())
	}
	if page.Offset() != 50 {
		t.Fatalf("unexpected offset: %d", page.Offset())
	}
}
