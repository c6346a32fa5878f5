package extractor

// BuildBillPagePrompt returns the extraction prompt for one medical bill page.
// The model is deliberately asked for every visible row, summary rows
// included: deterministic post-hoc filtering is more reliable than asking a
// probabilistic model to self-filter, so that work lives in the sanitizer.
func BuildBillPagePrompt() string {
	return `You are a financial data extraction assistant. Analyze the provided medical bill page image and extract EVERY visible row of the bill table.

IMPORTANT INSTRUCTIONS:
- Extract ALL rows exactly as printed, including totals, subtotals, taxes, and discounts. Do not skip, merge, or summarize any row.
- "item_amount" is the net amount of the row (rate x quantity, after discounts) when printed.
- If a quantity is not printed, use 1.0. If a rate or amount is not printed, use 0.
- Classify the page as one of exactly: "Bill Detail", "Final Bill", "Pharmacy".

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation, just the raw JSON object:
{
  "page_type": "Bill Detail | Final Bill | Pharmacy",
  "bill_items": [
    {
      "item_name": "string",
      "item_rate": 0.0,
      "item_quantity": 0.0,
      "item_amount": 0.0
    }
  ]
}`
}
