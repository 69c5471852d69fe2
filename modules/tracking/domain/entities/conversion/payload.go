package conversion

// Catalog-specific payload keys. The fallback path must never emit these, and
// it strips any the caller supplied.
var catalogFields = []string{"content_type", "content_ids", "contents", "num_items"}

func clone(customData map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(customData)+6)
	for k, v := range customData {
		out[k] = v
	}
	return out
}

// BuildCatalogPayload merges the enrichment fields into the caller-supplied
// custom data. The catalog identifier itself is deliberately absent: the
// receiving API infers the catalog from the pixel binding, and an explicit id
// in event data would let one merchant's events reference another's catalog.
func BuildCatalogPayload(c Classification, customData map[string]interface{}) map[string]interface{} {
	out := clone(customData)
	out["content_type"] = "product"
	out["content_ids"] = c.ContentIDs
	out["contents"] = c.Contents
	out["value"] = c.TotalValue.InexactFloat64()
	out["currency"] = c.Currency
	out["num_items"] = len(c.Contents)
	return out
}

// BuildFallbackPayload produces the minimal conversion payload for events that
// failed classification or ownership validation. Value and currency survive so
// the conversion still counts toward campaign optimization; everything
// catalog-shaped is stripped.
func BuildFallbackPayload(c Classification, customData map[string]interface{}) map[string]interface{} {
	out := clone(customData)
	for _, field := range catalogFields {
		delete(out, field)
	}
	if len(c.Contents) > 0 {
		out["value"] = c.TotalValue.InexactFloat64()
	}
	if c.Currency != "" {
		out["currency"] = c.Currency
	}
	return out
}
