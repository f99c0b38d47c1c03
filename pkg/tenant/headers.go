package tenant

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Header names used to propagate the resolved tenant configuration to the
// upstream renderer. One header per field; feature flags travel as a single
// JSON-encoded blob. Absent optional fields are propagated as empty strings
// so downstream readers never see a literal "null".
const (
	HeaderID             = "X-Tenant-Id"
	HeaderSchema         = "X-Tenant-Schema"
	HeaderAPIURL         = "X-Tenant-Api-Url"
	HeaderStoreName      = "X-Tenant-Store-Name"
	HeaderStoreLogo      = "X-Tenant-Store-Logo"
	HeaderPrimaryColor   = "X-Tenant-Primary-Color"
	HeaderSecondaryColor = "X-Tenant-Secondary-Color"
	HeaderAccentColor    = "X-Tenant-Accent-Color"
	HeaderCurrency       = "X-Tenant-Currency"
	HeaderLocale         = "X-Tenant-Locale"
	HeaderContactEmail   = "X-Tenant-Contact-Email"
	HeaderContactPhone   = "X-Tenant-Contact-Phone"
	HeaderFeatures       = "X-Tenant-Features"
)

// headerNames lists every propagation header, for bulk operations.
var headerNames = []string{
	HeaderID,
	HeaderSchema,
	HeaderAPIURL,
	HeaderStoreName,
	HeaderStoreLogo,
	HeaderPrimaryColor,
	HeaderSecondaryColor,
	HeaderAccentColor,
	HeaderCurrency,
	HeaderLocale,
	HeaderContactEmail,
	HeaderContactPhone,
	HeaderFeatures,
}

// StripHeaders removes every X-Tenant-* propagation header. The router
// calls it on inbound requests so tenant identity can only originate from
// resolution at the edge, never from the client.
func StripHeaders(h http.Header) {
	for _, name := range headerNames {
		h.Del(name)
	}
}

// Headers converts a resolved configuration into the outbound header set.
// It is a pure function: the router merges the result into the forwarded
// request instead of mutating headers across branching code.
func Headers(cfg *Config) http.Header {
	h := make(http.Header, 13)
	if cfg == nil {
		return h
	}

	h.Set(HeaderID, strconv.FormatInt(cfg.ID, 10))
	h.Set(HeaderSchema, cfg.Schema)
	h.Set(HeaderAPIURL, cfg.APIURL)
	h.Set(HeaderStoreName, cfg.StoreName)
	h.Set(HeaderStoreLogo, cfg.StoreLogo)
	h.Set(HeaderPrimaryColor, cfg.PrimaryColor)
	h.Set(HeaderSecondaryColor, cfg.SecondaryColor)
	h.Set(HeaderAccentColor, cfg.AccentColor)
	h.Set(HeaderCurrency, cfg.Currency)
	h.Set(HeaderLocale, cfg.Locale)
	h.Set(HeaderContactEmail, cfg.Contact.Email)
	h.Set(HeaderContactPhone, cfg.Contact.Phone)

	features, err := json.Marshal(cfg.Features)
	if err != nil {
		// Features is a struct of four bools; marshaling cannot fail in
		// practice, but a blank header is still safer than a panic.
		features = []byte("")
	}
	h.Set(HeaderFeatures, string(features))

	return h
}

// FromHeaders reconstructs a tenant configuration from propagated headers.
// Downstream handlers use this instead of re-resolving the tenant. Returns
// (nil, false) when the request carries no tenant identity header.
func FromHeaders(h http.Header) (*Config, bool) {
	rawID := h.Get(HeaderID)
	if rawID == "" {
		return nil, false
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, false
	}

	cfg := &Config{
		ID:             id,
		Schema:         h.Get(HeaderSchema),
		APIURL:         h.Get(HeaderAPIURL),
		StoreName:      h.Get(HeaderStoreName),
		StoreLogo:      h.Get(HeaderStoreLogo),
		PrimaryColor:   h.Get(HeaderPrimaryColor),
		SecondaryColor: h.Get(HeaderSecondaryColor),
		AccentColor:    h.Get(HeaderAccentColor),
		Currency:       h.Get(HeaderCurrency),
		Locale:         h.Get(HeaderLocale),
		Contact: Contact{
			Email: h.Get(HeaderContactEmail),
			Phone: h.Get(HeaderContactPhone),
		},
	}

	if raw := h.Get(HeaderFeatures); raw != "" {
		// A corrupt blob leaves all flags at their zero values rather
		// than failing the request.
		_ = json.Unmarshal([]byte(raw), &cfg.Features)
	}

	return cfg, true
}

// IsMultiTenant reports whether the request went through tenant resolution,
// as opposed to a bypassed development or preview host.
func IsMultiTenant(h http.Header) bool {
	return h.Get(HeaderID) != ""
}
