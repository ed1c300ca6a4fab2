package claims

// OpenID Connect scopes that release standard claims.
const (
	ScopeOpenID  = "openid"
	ScopeProfile = "profile"
	ScopeEmail   = "email"
	ScopeAddress = "address"
	ScopePhone   = "phone"
)

// Definition describes one standard claim. Definitions are values with no
// exported fields so the catalog can't be altered by callers.
type Definition struct {
	key         string
	kind        ValueKind
	multiValued bool
	structured  bool
	scope       string
	description string
}

// Key is the claim name as it appears on the wire.
func (d Definition) Key() string { return d.key }

// Kind is the value-format rule for the claim.
func (d Definition) Kind() ValueKind { return d.kind }

// MultiValued reports whether the value may hold several space-separated
// name parts.
func (d Definition) MultiValued() bool { return d.multiValued }

// Structured reports whether the value may be a JSON object instead of a
// plain string.
func (d Definition) Structured() bool { return d.structured }

// Scope is the OpenID Connect scope that releases this claim.
func (d Definition) Scope() string { return d.scope }

// Description is the human-readable meaning of the claim.
func (d Definition) Description() string { return d.description }

// IsZero reports whether d is the zero Definition returned on lookup misses.
func (d Definition) IsZero() bool { return d.key == "" }

// Standard claims, in catalog order.
var (
	Address = Definition{
		key:         "address",
		kind:        FreeText,
		structured:  true,
		scope:       ScopeAddress,
		description: "End-User's preferred postal address.",
	}

	BirthDate = Definition{
		key:   "birthdate",
		kind:  IsoDate,
		scope: ScopeProfile,
		description: "End-User's birthday in YYYY-MM-DD format. The year may be 0000, " +
			"indicating that it is omitted.",
	}

	EmailAddress = Definition{
		key:   "email",
		kind:  Email,
		scope: ScopeEmail,
		description: "End-User's preferred e-mail address. Relying Parties must not " +
			"rely upon this value being unique.",
	}

	EmailVerified = Definition{
		key:   "email_verified",
		kind:  Boolean,
		scope: ScopeEmail,
		description: "True if the End-User's e-mail address has been verified; " +
			"otherwise false.",
	}

	GivenName = Definition{
		key:         "given_name",
		kind:        FreeText,
		multiValued: true,
		scope:       ScopeProfile,
		description: "Given name(s) or first name(s) of the End-User, separated by spaces.",
	}

	Gender = Definition{
		key:   "gender",
		kind:  FreeText,
		scope: ScopeProfile,
		description: "End-User's gender. Defined values are female and male; other " +
			"values may be used.",
	}

	FamilyName = Definition{
		key:         "family_name",
		kind:        FreeText,
		multiValued: true,
		scope:       ScopeProfile,
		description: "Surname(s) or last name(s) of the End-User, separated by spaces.",
	}

	Locale = Definition{
		key:   "locale",
		kind:  BCP47Locale,
		scope: ScopeProfile,
		description: "End-User's locale as a BCP47 language tag, e.g. en-US. The " +
			"underscore form en_US is also accepted.",
	}

	MiddleName = Definition{
		key:         "middle_name",
		kind:        FreeText,
		multiValued: true,
		scope:       ScopeProfile,
		description: "Middle name(s) of the End-User, separated by spaces.",
	}

	Name = Definition{
		key:   "name",
		kind:  FreeText,
		scope: ScopeProfile,
		description: "End-User's full name in displayable form including all name " +
			"parts, ordered according to the End-User's locale and preferences.",
	}

	Nickname = Definition{
		key:         "nickname",
		kind:        FreeText,
		scope:       ScopeProfile,
		description: "Casual name of the End-User.",
	}

	Picture = Definition{
		key:         "picture",
		kind:        URL,
		scope:       ScopeProfile,
		description: "URL of the End-User's profile picture. Must refer to an image file.",
	}

	PhoneNumber = Definition{
		key:   "phone_number",
		kind:  E164Phone,
		scope: ScopePhone,
		description: "End-User's preferred telephone number in E.164 format, e.g. " +
			"+1 (425) 555-1212.",
	}

	PhoneNumberVerified = Definition{
		key:   "phone_number_verified",
		kind:  Boolean,
		scope: ScopePhone,
		description: "True if the End-User's phone number has been verified; " +
			"otherwise false.",
	}

	PreferredUsername = Definition{
		key:   "preferred_username",
		kind:  FreeText,
		scope: ScopeProfile,
		description: "Shorthand name by which the End-User wishes to be referred to. " +
			"Relying Parties must not rely upon this value being unique.",
	}

	Profile = Definition{
		key:         "profile",
		kind:        URL,
		scope:       ScopeProfile,
		description: "URL of the End-User's profile page.",
	}

	Subject = Definition{
		key:         "sub",
		kind:        OpaqueIdentifier,
		scope:       ScopeOpenID,
		description: "Unique identifier for the End-User at the issuer.",
	}

	UpdatedAt = Definition{
		key:   "updated_at",
		kind:  UnixTimestamp,
		scope: ScopeProfile,
		description: "Time the End-User's information was last updated, in seconds " +
			"since 1970-01-01T00:00:00Z.",
	}

	Website = Definition{
		key:         "website",
		kind:        URL,
		scope:       ScopeProfile,
		description: "URL of the End-User's Web page or blog.",
	}

	ZoneInfo = Definition{
		key:   "zoneinfo",
		kind:  FreeText,
		scope: ScopeProfile,
		description: "End-User's time zone from the zoneinfo database, e.g. " +
			"Europe/Paris.",
	}
)
