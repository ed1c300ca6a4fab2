package claims

// ValueKind is the format rule a claim value must satisfy.
type ValueKind int

const (
	// FreeText accepts any string, including the empty string.
	FreeText ValueKind = iota + 1

	// Boolean accepts exactly true or false.
	Boolean

	// IsoDate accepts YYYY-MM-DD. The year may be 0000 to signal that it was
	// omitted.
	IsoDate

	// Email accepts a string with exactly one @ and non-empty local and
	// domain parts.
	Email

	// URL accepts an absolute http or https URL.
	URL

	// E164Phone accepts +<country><subscriber>, ignoring display formatting.
	E164Phone

	// BCP47Locale accepts ll, ll-CC or ll_CC.
	BCP47Locale

	// UnixTimestamp accepts a non-negative number of seconds since the epoch.
	UnixTimestamp

	// OpaqueIdentifier accepts any non-empty string.
	OpaqueIdentifier
)

var kindNames = map[ValueKind]string{
	FreeText:         "free_text",
	Boolean:          "boolean",
	IsoDate:          "iso_date",
	Email:            "email",
	URL:              "url",
	E164Phone:        "e164_phone",
	BCP47Locale:      "bcp47_locale",
	UnixTimestamp:    "unix_timestamp",
	OpaqueIdentifier: "opaque_identifier",
}

// String returns the snake_case name used in catalog output.
func (k ValueKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText lets ValueKind render as its name in JSON documents.
func (k ValueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
