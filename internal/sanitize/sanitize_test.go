package sanitize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billex/internal/port"
	"billex/internal/sanitize"
)

func rawItem(name string, rate, qty, amount interface{}) port.RawItem {
	return port.RawItem{
		ItemName:     name,
		ItemRate:     rate,
		ItemQuantity: qty,
		ItemAmount:   amount,
	}
}

func TestItems_DropsSummaryRows(t *testing.T) {
	tests := []struct {
		name     string
		itemName string
	}{
		{"plain total", "Total"},
		{"uppercase total", "TOTAL"},
		{"total with colon", "Total:"},
		{"total with dash", "Total-"},
		{"subtotal", "Subtotal"},
		{"sub total phrase", "Sub Total"},
		{"net amount", "Net Amount"},
		{"grand total", "Grand Total"},
		{"tax", "Tax"},
		{"gst", "GST"},
		{"cgst", "CGST @ 9%"},
		{"sgst", "SGST @ 9%"},
		{"igst", "IGST"},
		{"vat", "VAT"},
		{"discount", "Discount"},
		{"round off", "Round Off"},
		{"balance", "Balance"},
		{"amount due", "Amount Due"},
		{"gross amount", "Gross Amount"},
		{"total amount", "Total Amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := sanitize.Items([]port.RawItem{rawItem(tt.itemName, 0, 1, 5000.0)})
			assert.Empty(t, out)
		})
	}
}

func TestItems_SummaryWordInsidePhraseIsStillDropped(t *testing.T) {
	// Accepted trade-off: genuine items carrying a banned word as a whole
	// word are dropped too.
	out := sanitize.Items([]port.RawItem{
		rawItem("Total Knee Replacement", 90000.0, 1.0, 90000.0),
		rawItem("Total Parenteral Nutrition", 1200.0, 1.0, 1200.0),
	})
	assert.Empty(t, out)
}

func TestItems_KeywordAsSubwordSurvives(t *testing.T) {
	// "subtotals" is not the token "subtotal"; "Taxi" is not "tax".
	out := sanitize.Items([]port.RawItem{
		rawItem("Subtotalsol Injection", 10.0, 1.0, 10.0),
		rawItem("Taxi Charges", 250.0, 1.0, 250.0),
	})
	require.Len(t, out, 2)
	assert.Equal(t, "Subtotalsol Injection", out[0].ItemName)
	assert.Equal(t, "Taxi Charges", out[1].ItemName)
}

func TestItems_DropsEmptyAndUnknownNames(t *testing.T) {
	out := sanitize.Items([]port.RawItem{
		rawItem("", 10.0, 1.0, 10.0),
		rawItem("   ", 10.0, 1.0, 10.0),
		rawItem("unknown", 10.0, 1.0, 10.0),
		rawItem("Unknown", 10.0, 1.0, 10.0),
		rawItem("Paracetamol", 10.0, 1.0, 10.0),
	})
	require.Len(t, out, 1)
	assert.Equal(t, "Paracetamol", out[0].ItemName)
}

func TestItems_BackfillsAmountFromRate(t *testing.T) {
	out := sanitize.Items([]port.RawItem{
		rawItem("Paracetamol", 10.0, 5.0, 0.0),
	})
	require.Len(t, out, 1)
	assert.Equal(t, 50.0, out[0].ItemAmount)
}

func TestItems_NoBackfillWhenRateZero(t *testing.T) {
	out := sanitize.Items([]port.RawItem{
		rawItem("Dressing", 0.0, 2.0, 0.0),
	})
	require.Len(t, out, 1)
	assert.Equal(t, 0.0, out[0].ItemAmount)
}

func TestItems_NumericCoercion(t *testing.T) {
	t.Run("string numbers parse", func(t *testing.T) {
		out := sanitize.Items([]port.RawItem{
			rawItem("Syringe", "12.50", "2", "25.00"),
		})
		require.Len(t, out, 1)
		assert.Equal(t, 12.5, out[0].ItemRate)
		assert.Equal(t, 2.0, out[0].ItemQuantity)
		assert.Equal(t, 25.0, out[0].ItemAmount)
	})

	t.Run("comma separators are tolerated", func(t *testing.T) {
		out := sanitize.Items([]port.RawItem{
			rawItem("Room Rent", "1,500.00", 3.0, "4,500.00"),
		})
		require.Len(t, out, 1)
		assert.Equal(t, 1500.0, out[0].ItemRate)
		assert.Equal(t, 4500.0, out[0].ItemAmount)
	})

	t.Run("missing fields default", func(t *testing.T) {
		out := sanitize.Items([]port.RawItem{
			rawItem("Gauze", nil, nil, 30.0),
		})
		require.Len(t, out, 1)
		assert.Equal(t, 1.0, out[0].ItemQuantity)
		assert.Equal(t, 0.0, out[0].ItemRate)
		assert.Equal(t, 30.0, out[0].ItemAmount)
	})

	t.Run("unparseable value drops the item only", func(t *testing.T) {
		out := sanitize.Items([]port.RawItem{
			rawItem("Bad Row", "ten", 1.0, 10.0),
			rawItem("Good Row", 10.0, 1.0, 10.0),
		})
		require.Len(t, out, 1)
		assert.Equal(t, "Good Row", out[0].ItemName)
	})
}

func TestItems_SubCentAmountBackfillsInOnePass(t *testing.T) {
	// An amount that rounds to zero counts as missing, so the backfill fires
	// on the first pass and a second pass changes nothing.
	out := sanitize.Items([]port.RawItem{
		rawItem("Micro Tip", 12.0, 2.0, 0.004),
	})
	require.Len(t, out, 1)
	assert.Equal(t, 24.0, out[0].ItemAmount)

	again := sanitize.Items([]port.RawItem{
		rawItem(out[0].ItemName, out[0].ItemRate, out[0].ItemQuantity, out[0].ItemAmount),
	})
	require.Len(t, again, 1)
	assert.Equal(t, out[0], again[0])
}

func TestItems_RoundsMoneyToTwoDecimals(t *testing.T) {
	out := sanitize.Items([]port.RawItem{
		rawItem("Infusion", 33.333, 3.0, 0.0),
	})
	require.Len(t, out, 1)
	assert.Equal(t, 33.33, out[0].ItemRate)
	// Backfill uses the rounded rate, so the reported amount is consistent
	// with the reported rate.
	assert.Equal(t, 99.99, out[0].ItemAmount)
}

func TestItems_PreservesOrder(t *testing.T) {
	out := sanitize.Items([]port.RawItem{
		rawItem("Alpha", 1.0, 1.0, 1.0),
		rawItem("Total", 0, 1.0, 99.0),
		rawItem("Beta", 2.0, 1.0, 2.0),
		rawItem("Gamma", 3.0, 1.0, 3.0),
	})
	require.Len(t, out, 3)
	assert.Equal(t, "Alpha", out[0].ItemName)
	assert.Equal(t, "Beta", out[1].ItemName)
	assert.Equal(t, "Gamma", out[2].ItemName)
}

func TestItems_Idempotent(t *testing.T) {
	first := sanitize.Items([]port.RawItem{
		rawItem("Paracetamol", "10.005", 5.0, 0.0),
		rawItem("Total", 0, 1.0, 99.0),
		rawItem("X-Ray", 450.0, nil, nil),
	})

	recycled := make([]port.RawItem, 0, len(first))
	for _, item := range first {
		recycled = append(recycled, rawItem(item.ItemName, item.ItemRate, item.ItemQuantity, item.ItemAmount))
	}
	second := sanitize.Items(recycled)

	assert.Equal(t, first, second)
}

func TestIsSummaryRow(t *testing.T) {
	assert.True(t, sanitize.IsSummaryRow("total"))
	assert.True(t, sanitize.IsSummaryRow("  Grand   Total  "))
	assert.True(t, sanitize.IsSummaryRow("Net Amount (INR)"))
	assert.False(t, sanitize.IsSummaryRow("Paracetamol 500mg"))
	assert.False(t, sanitize.IsSummaryRow(""))
}
