package conversion

import "strings"

// CanonicalEvent is the closed set of event names the pipeline understands.
// Storefront scripts and older tag versions send a handful of spellings per
// event; Normalize folds them once at ingestion so the rest of the pipeline
// never string-matches.
type CanonicalEvent string

const (
	ViewContent      CanonicalEvent = "ViewContent"
	AddToCart        CanonicalEvent = "AddToCart"
	InitiateCheckout CanonicalEvent = "InitiateCheckout"
	Purchase         CanonicalEvent = "Purchase"
	PageView         CanonicalEvent = "PageView"
	Search           CanonicalEvent = "Search"
)

var synonyms = map[string]CanonicalEvent{
	"viewcontent":       ViewContent,
	"productviewed":     ViewContent,
	"productview":       ViewContent,
	"addtocart":         AddToCart,
	"cartadd":           AddToCart,
	"productadded":      AddToCart,
	"initiatecheckout":  InitiateCheckout,
	"begincheckout":     InitiateCheckout,
	"checkoutstarted":   InitiateCheckout,
	"purchase":          Purchase,
	"ordercompleted":    Purchase,
	"checkoutcompleted": Purchase,
	"pageview":          PageView,
	"search":            Search,
}

var catalogEligible = map[CanonicalEvent]bool{
	ViewContent:      true,
	AddToCart:        true,
	InitiateCheckout: true,
	Purchase:         true,
}

// Normalize maps a raw event name onto the canonical set. Unknown names are
// passed through unchanged so custom conversions still dispatch under their
// original name.
func Normalize(raw string) CanonicalEvent {
	key := strings.ToLower(raw)
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	if canonical, ok := synonyms[key]; ok {
		return canonical
	}
	return CanonicalEvent(raw)
}

// CatalogEligible reports whether the event type may carry product enrichment.
func (e CanonicalEvent) CatalogEligible() bool {
	return catalogEligible[e]
}

func (e CanonicalEvent) String() string {
	return string(e)
}
