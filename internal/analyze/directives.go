package analyze

import (
	"fmt"
	"go/ast"
	"reflect"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"element-autodoc/internal/universe"
)

// DirectivePrefix starts every metadata comment line.
const DirectivePrefix = "//element:"

// StructTagKey is the struct tag read on record fields.
const StructTagKey = "element"

// freeText lists tags whose argument is the raw rest of the line.
var freeText = map[string]bool{
	"model":       true,
	"name":        true,
	"description": true,
	"group":       true,
	"type":        true,
}

// parseDirectives reads the //element: lines of a comment group in order.
// Consecutive description lines are merged into one tag.
func parseDirectives(cg *ast.CommentGroup) (universe.Tags, error) {
	if cg == nil {
		return nil, nil
	}

	var (
		tags     universe.Tags
		lastDesc = -1
	)

	for i, c := range cg.List {
		rest, ok := strings.CutPrefix(c.Text, DirectivePrefix)
		if !ok {
			continue
		}

		tag, err := parseDirective(rest)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.TrimSpace(c.Text), err)
		}

		if tag.Name == "description" && lastDesc >= 0 && lastDesc == i-1 {
			prev := &tags[len(tags)-1]
			prev.Value += "\n" + tag.Value
			lastDesc = i

			continue
		}

		if tag.Name == "description" {
			lastDesc = i
		}

		tags = append(tags, tag)
	}

	return tags, nil
}

func parseDirective(s string) (universe.Tag, error) {
	name, args, _ := strings.Cut(s, " ")
	name = strings.TrimSpace(name)
	args = strings.TrimSpace(args)

	if name == "" {
		return universe.Tag{}, fmt.Errorf("empty directive")
	}

	if freeText[name] {
		return universe.Tag{Name: name, Value: unquote(args)}, nil
	}

	fields, err := shell.Fields(args, literalEnv)
	if err != nil {
		return universe.Tag{}, fmt.Errorf("splitting arguments: %w", err)
	}

	tag := universe.Tag{Name: name}

	for _, f := range fields {
		if k, v, ok := strings.Cut(f, "="); ok && k != "" {
			if tag.Attrs == nil {
				tag.Attrs = make(map[string]string)
			}

			tag.Attrs[k] = v

			continue
		}

		tag.Args = append(tag.Args, f)
	}

	tag.Value = strings.Join(tag.Args, " ")

	return tag, nil
}

// literalEnv keeps $NAME references as written.
func literalEnv(name string) string {
	return "$" + name
}

// unquote strips one pair of matching double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}

	return s
}

// docText returns the prose of a comment group, directives excluded,
// with lines joined by spaces.
func docText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}

	return strings.Join(strings.Fields(cg.Text()), " ")
}

// structTagInfo is the parsed form of an element struct tag.
type structTagInfo struct {
	Skip      bool
	Name      string
	Type      string
	ChildPath string
}

// parseStructTag parses `element:"name,type=...,childpath=..."`.
// A value of "-" skips the field.
func parseStructTag(tag reflect.StructTag) structTagInfo {
	var info structTagInfo

	raw, ok := tag.Lookup(StructTagKey)
	if !ok || raw == "" {
		return info
	}

	if raw == "-" {
		info.Skip = true
		return info
	}

	parts := strings.Split(raw, ",")
	for idx, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		if kv := strings.SplitN(p, "=", 2); len(kv) == 2 {
			key := strings.TrimSpace(kv[0])
			val := strings.TrimSpace(kv[1])

			switch key {
			case "name":
				info.Name = val
			case "type":
				info.Type = val
			case "childpath", "child":
				info.ChildPath = val
			}
		} else if idx == 0 && info.Name == "" {
			// no '=' present
			info.Name = p
		}
	}

	return info
}

// jsonName returns the name a field is encoded under by encoding/json,
// or "" when the tag doesn't rename it.
func jsonName(tag reflect.StructTag) string {
	raw, ok := tag.Lookup("json")
	if !ok {
		return ""
	}

	name, _, _ := strings.Cut(raw, ",")
	if name == "-" {
		return ""
	}

	return name
}

// fieldTags merges the directive tags of a field with its struct tags.
// Directives win over struct tags; struct tags win over the json name and
// the doc text.
func fieldTags(doc *ast.CommentGroup, st reflect.StructTag) (universe.Tags, bool, error) {
	info := parseStructTag(st)
	if info.Skip {
		return nil, true, nil
	}

	tags, err := parseDirectives(doc)
	if err != nil {
		return nil, false, err
	}

	add := func(name, value string) {
		if value != "" && !tags.Has(name) {
			tags = append(tags, universe.Tag{Name: name, Value: value})
		}
	}

	add("name", info.Name)
	add("name", jsonName(st))
	add("type", info.Type)
	add("childpath", info.ChildPath)
	add("description", docText(doc))

	return tags, false, nil
}
