package collect

import (
	"fmt"

	"element-autodoc/internal/diagnostic"
	"element-autodoc/internal/key"
	"element-autodoc/internal/universe"
)

// Tag names read by the collector.
const (
	TagModel       = "model"
	TagName        = "name"
	TagGroup       = "group"
	TagDescription = "description"
)

// Candidate is a model declaration with its resolved identity.
type Candidate struct {
	Decl        *universe.Declaration
	Key         string
	Name        string
	Group       string
	Description string
}

// Collector finds model candidates.
type Collector struct {
	keys  *key.Format
	diags *diagnostic.Diagnostics
}

// NewCollector creates a new Collector. A nil format selects the default
// key format; diags may be nil.
func NewCollector(keys *key.Format, diags *diagnostic.Diagnostics) *Collector {
	if keys == nil {
		keys = key.Default()
	}

	return &Collector{keys: keys, diags: diags}
}

// Collect returns the valid model candidates of u in declaration order.
// Invalid candidates are reported and skipped.
func (c *Collector) Collect(u universe.Universe) []Candidate {
	var out []Candidate

	for _, d := range u.Declarations() {
		if cand, ok := c.candidate(d); ok {
			out = append(out, cand)
		}
	}

	return out
}

func (c *Collector) candidate(d *universe.Declaration) (Candidate, bool) {
	k, ok := d.Tags.Value(TagModel)
	if !ok {
		return Candidate{}, false
	}

	if !d.Kind.IsClassLike() {
		c.reject(diagnostic.CodeInvalidModelKind,
			fmt.Sprintf("%s is a %s and cannot be a model", d, d.Kind), d)

		return Candidate{}, false
	}

	if !c.keys.Valid(k) {
		c.reject(diagnostic.CodeInvalidKeyFormat,
			fmt.Sprintf("model key %q does not match pattern %s", k, c.keys), d)

		return Candidate{}, false
	}

	return Candidate{
		Decl:        d,
		Key:         k,
		Name:        displayName(d),
		Group:       c.group(d),
		Description: c.description(d),
	}, true
}

func displayName(d *universe.Declaration) string {
	if n, ok := d.Tags.Value(TagName); ok {
		return n
	}

	return d.ID.Short()
}

func (c *Collector) group(d *universe.Declaration) string {
	if g, ok := d.Tags.Value(TagGroup); ok {
		return g
	}

	if d.Scope != nil {
		if g, ok := d.Scope.Tags.Value(TagGroup); ok {
			return g
		}
	}

	c.warn(diagnostic.CodeMissingRequiredAnnotation,
		fmt.Sprintf("%s has no group", d), d)

	return ""
}

func (c *Collector) description(d *universe.Declaration) string {
	if desc, ok := d.Tags.Value(TagDescription); ok {
		return desc
	}

	c.warn(diagnostic.CodeMissingRequiredAnnotation,
		fmt.Sprintf("%s has no description", d), d)

	return ""
}

func (c *Collector) reject(code, msg string, d *universe.Declaration) {
	if c.diags != nil {
		c.diags.AddError(code, msg, d.String(), "")
	}
}

func (c *Collector) warn(code, msg string, d *universe.Declaration) {
	if c.diags != nil {
		c.diags.AddWarning(code, msg, d.String(), "")
	}
}
