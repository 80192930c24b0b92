package vocab

import (
	"fmt"

	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/universe"
)

// Names tells New which declarations of a universe play which role.
// Empty optional names are ignored.
type Names struct {
	Object     string `yaml:"object"`     // universal top type (required)
	Collection string `yaml:"collection"` // general collection family (required)
	Set        string `yaml:"set"`        // set family, a Collection (required)
	Map        string `yaml:"map"`        // key/value family (required)
	Number     string `yaml:"number"`     // numeric supertype (optional)
	String     string `yaml:"string"`     // declared string type (optional)

	// Boxed maps wrapper declarations to the primitive kind they carry.
	// Missing wrappers are skipped.
	Boxed map[string]universe.PrimitiveKind `yaml:"-"`
}

// DefaultNames returns the names used by the Go source frontend.
func DefaultNames() Names {
	return Names{
		Object:     universe.BuiltinObject,
		Collection: universe.BuiltinCollection,
		Set:        universe.BuiltinSet,
		Map:        universe.BuiltinMap,
		Number:     "encoding/json.Number",
		Boxed: map[string]universe.PrimitiveKind{
			"database/sql.NullBool":    universe.KindBool,
			"database/sql.NullByte":    universe.KindInt8,
			"database/sql.NullInt16":   universe.KindInt16,
			"database/sql.NullInt32":   universe.KindInt32,
			"database/sql.NullInt64":   universe.KindInt64,
			"database/sql.NullFloat64": universe.KindFloat64,
			"database/sql.NullString":  universe.KindString,
		},
	}
}

// IsZero reports whether no role is named.
func (n Names) IsZero() bool {
	return n.Object == "" && n.Collection == "" && n.Set == "" && n.Map == "" &&
		n.Number == "" && n.String == "" && len(n.Boxed) == 0
}

// Vocabulary is the resolved set of well-known declarations.
type Vocabulary struct {
	Object     *universe.Declaration
	Collection *universe.Declaration
	Set        *universe.Declaration
	Map        *universe.Declaration
	Number     *universe.Declaration // nil when the universe has none
	String     *universe.Declaration // nil when the universe has none

	boxed map[*universe.Declaration]universe.PrimitiveKind
}

// New resolves names against u. A missing required declaration is a
// type universe failure.
func New(u universe.Universe, names Names) (*Vocabulary, error) {
	v := &Vocabulary{boxed: make(map[*universe.Declaration]universe.PrimitiveKind)}

	required := []struct {
		role string
		name string
		dst  **universe.Declaration
	}{
		{"object", names.Object, &v.Object},
		{"collection", names.Collection, &v.Collection},
		{"set", names.Set, &v.Set},
		{"map", names.Map, &v.Map},
	}

	for _, r := range required {
		if r.name == "" {
			return nil, fmt.Errorf("%w: no %s declaration configured", diagnostic.ErrTypeUniverseFailure, r.role)
		}

		d := u.Lookup(r.name)
		if d == nil {
			return nil, fmt.Errorf("%w: %s declaration %q not found", diagnostic.ErrTypeUniverseFailure, r.role, r.name)
		}

		*r.dst = d
	}

	if names.Number != "" {
		v.Number = u.Lookup(names.Number)
	}

	if names.String != "" {
		v.String = u.Lookup(names.String)
	}

	for name, kind := range names.Boxed {
		if d := u.Lookup(name); d != nil {
			v.boxed[d] = kind
		}
	}

	return v, nil
}

// Unbox returns the primitive kind carried by a wrapper declaration.
func (v *Vocabulary) Unbox(d *universe.Declaration) (universe.PrimitiveKind, bool) {
	k, ok := v.boxed[d]
	return k, ok
}
