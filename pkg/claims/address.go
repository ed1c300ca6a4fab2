package claims

import "fmt"

// PostalAddress is the structured form of the address claim. All members
// are optional.
type PostalAddress struct {
	Formatted     string `json:"formatted,omitempty"`
	StreetAddress string `json:"street_address,omitempty"`
	Locality      string `json:"locality,omitempty"`
	Region        string `json:"region,omitempty"`
	PostalCode    string `json:"postal_code,omitempty"`
	Country       string `json:"country,omitempty"`
}

var addressMembers = map[string]struct{}{
	"formatted":      {},
	"street_address": {},
	"locality":       {},
	"region":         {},
	"postal_code":    {},
	"country":        {},
}

func checkAddressMap(m map[string]any) string {
	for k, v := range m {
		if _, ok := addressMembers[k]; !ok {
			return fmt.Sprintf("unknown address member %q", k)
		}
		if _, ok := v.(string); !ok {
			return fmt.Sprintf("address member %q must be a string", k)
		}
	}
	return ""
}

// PostalAddress returns the address claim of s in structured form. A
// plain string address is returned as Formatted. It reports false when the
// claim is absent or holds an unsupported type.
func (s Set) PostalAddress() (PostalAddress, bool) {
	switch v := s["address"].(type) {
	case PostalAddress:
		return v, true
	case *PostalAddress:
		if v == nil {
			return PostalAddress{}, false
		}
		return *v, true
	case string:
		return PostalAddress{Formatted: v}, true
	case map[string]any:
		return postalAddressFromMap(v), true
	}
	return PostalAddress{}, false
}

// postalAddressFromMap converts a decoded JSON object. Unknown members and
// non-string values are ignored.
func postalAddressFromMap(m map[string]any) PostalAddress {
	str := func(k string) string {
		s, _ := m[k].(string)
		return s
	}
	return PostalAddress{
		Formatted:     str("formatted"),
		StreetAddress: str("street_address"),
		Locality:      str("locality"),
		Region:        str("region"),
		PostalCode:    str("postal_code"),
		Country:       str("country"),
	}
}
