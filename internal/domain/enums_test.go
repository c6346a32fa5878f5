package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"billex/internal/domain"
)

func TestCoercePageType(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want domain.PageType
	}{
		{"bill detail passes through", "Bill Detail", domain.PageTypeBillDetail},
		{"final bill passes through", "Final Bill", domain.PageTypeFinalBill},
		{"pharmacy passes through", "Pharmacy", domain.PageTypePharmacy},
		{"unknown value defaults", "Invoice Summary", domain.PageTypeBillDetail},
		{"case mismatch defaults", "final bill", domain.PageTypeBillDetail},
		{"empty defaults", "", domain.PageTypeBillDetail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CoercePageType(tt.raw))
		})
	}
}
