package querydsl

import "log/slog"

type spelling struct {
	name       string
	deprecated bool
}

// ParseField is the static spelling table for one logical clause field:
// a preferred name plus any number of deprecated alternates. Matching is
// exact-string only; suffix handling for composite geo fields lives with
// the point decoder, not here.
type ParseField struct {
	name      string
	spellings []spelling
}

func NewParseField(name string, deprecatedNames ...string) ParseField {
	f := ParseField{
		name:      name,
		spellings: []spelling{{name: name}},
	}
	for _, d := range deprecatedNames {
		f.spellings = append(f.spellings, spelling{name: d, deprecated: true})
	}
	return f
}

// AllDeprecated marks every spelling of the field deprecated, used when a
// whole field has been replaced (for example score_type by the score
// boolean).
func (f ParseField) AllDeprecated() ParseField {
	e := f
	e.spellings = make([]spelling, len(f.spellings))
	for i, s := range f.spellings {
		e.spellings[i] = spelling{name: s.name, deprecated: true}
	}
	return e
}

// PreferredName is the canonical spelling, used in warnings and output.
func (f ParseField) PreferredName() string {
	return f.name
}

// Deprecated reports whether raw is a registered deprecated spelling.
func (f ParseField) Deprecated(raw string) bool {
	for _, s := range f.spellings {
		if s.name == raw {
			return s.deprecated
		}
	}
	return false
}

// Matcher applies the process-wide field matching policy. Under the strict
// policy a deprecated spelling is a parse error; under the lenient policy
// it matches and a warning is logged out-of-band. Unknown names are never
// the matcher's concern: a false match simply means the clause parser
// tries its next field.
type Matcher struct {
	Strict bool
	Logger *slog.Logger
}

func (m Matcher) Match(raw string, field ParseField) (bool, error) {
	for _, s := range field.spellings {
		if s.name != raw {
			continue
		}
		if s.deprecated {
			if m.Strict {
				return false, deprecatedFieldFault(raw, field.PreferredName())
			}
			if m.Logger != nil {
				m.Logger.Warn("deprecated field used", "field", raw, "use_instead", field.PreferredName())
			}
		}
		return true, nil
	}
	return false, nil
}
