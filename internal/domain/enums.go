package domain

// PageType classifies a bill page. It is passed through to callers and drives
// no behavior in the pipeline itself.
type PageType string

const (
	PageTypeBillDetail PageType = "Bill Detail"
	PageTypeFinalBill  PageType = "Final Bill"
	PageTypePharmacy   PageType = "Pharmacy"
)

// ValidPageTypes is the closed set of page classifications the model may
// return.
var ValidPageTypes = map[PageType]bool{
	PageTypeBillDetail: true,
	PageTypeFinalBill:  true,
	PageTypePharmacy:   true,
}

// CoercePageType maps an untrusted model-supplied value into the enum,
// defaulting anything unrecognized to "Bill Detail".
func CoercePageType(raw string) PageType {
	pt := PageType(raw)
	if ValidPageTypes[pt] {
		return pt
	}
	return PageTypeBillDetail
}
