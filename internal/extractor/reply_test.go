package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReply_StrictJSON(t *testing.T) {
	raw, err := DecodeReply(`{"page_type": "Final Bill", "bill_items": [{"item_name": "Consultation", "item_rate": 500, "item_quantity": 1, "item_amount": 500}]}`)
	require.NoError(t, err)
	assert.Equal(t, "Final Bill", raw.PageType)
	require.Len(t, raw.BillItems, 1)
	assert.Equal(t, "Consultation", raw.BillItems[0].ItemName)
}

func TestDecodeReply_StripsCodeFences(t *testing.T) {
	reply := "```json\n{\"page_type\": \"Pharmacy\", \"bill_items\": []}\n```"
	raw, err := DecodeReply(reply)
	require.NoError(t, err)
	assert.Equal(t, "Pharmacy", raw.PageType)
	assert.Empty(t, raw.BillItems)
}

func TestDecodeReply_CoercesUnknownPageType(t *testing.T) {
	raw, err := DecodeReply(`{"page_type": "Receipt", "bill_items": []}`)
	require.NoError(t, err)
	assert.Equal(t, "Bill Detail", raw.PageType)
}

func TestDecodeReply_RejectsNonJSON(t *testing.T) {
	_, err := DecodeReply("I could not read the page, sorry.")
	assert.Error(t, err)
}

func TestDecodeReply_TruncatesLongGarbageInError(t *testing.T) {
	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'x'
	}
	_, err := DecodeReply(string(long))
	require.Error(t, err)
	assert.Less(t, len(err.Error()), 700)
}
