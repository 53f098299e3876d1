// Package manifest loads unit-hierarchy definitions from weave.toml
// files and turns them into graph definitions with synthesized trace
// bodies for concrete members.
package manifest

import (
	"errors"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"

	"weave/internal/member"
	"weave/internal/unit"
)

// ErrNoUnits indicates a manifest without a [units] section.
var ErrNoUnits = errors.New("missing [units]")

// Manifest is a loaded hierarchy description.
type Manifest struct {
	// Defs in deterministic (name-sorted) order; references resolve
	// within the set, so feed them to Graph.DefineBatch.
	Defs []unit.Def
	// Classes lists units declared with kind = "class", sorted. Empty
	// means the manifest did not distinguish and every unit is fair game.
	Classes []string
}

type memberSpec struct {
	Kind      string `toml:"kind"`
	Delegates bool   `toml:"delegates"`
	Trace     string `toml:"trace"`
}

type unitSpec struct {
	Kind    string                `toml:"kind"`
	Base    string                `toml:"base"`
	Mixins  []string              `toml:"mixins"`
	Members map[string]memberSpec `toml:"members"`
}

type manifestFile struct {
	Units map[string]unitSpec `toml:"units"`
}

// Load parses a weave.toml manifest from disk.
func Load(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("units") {
		return nil, fmt.Errorf("%s: %w", path, ErrNoUnits)
	}
	return build(cfg)
}

// Parse parses manifest text, for callers that already hold the bytes.
func Parse(data []byte) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if !meta.IsDefined("units") {
		return nil, ErrNoUnits
	}
	return build(cfg)
}

func build(cfg manifestFile) (*Manifest, error) {
	names := make([]string, 0, len(cfg.Units))
	for name := range cfg.Units {
		names = append(names, name)
	}
	sort.Strings(names)

	m := &Manifest{Defs: make([]unit.Def, 0, len(names))}
	for _, name := range names {
		spec := cfg.Units[name]
		def, err := buildDef(ident(name), spec)
		if err != nil {
			return nil, err
		}
		m.Defs = append(m.Defs, def)
		switch spec.Kind {
		case "class":
			m.Classes = append(m.Classes, def.Name)
		case "", "mixin":
		default:
			return nil, fmt.Errorf("unit %q: unknown kind %q (expected class or mixin)", name, spec.Kind)
		}
	}
	sort.Strings(m.Classes)
	return m, nil
}

func buildDef(name string, spec unitSpec) (unit.Def, error) {
	def := unit.Def{Name: name, Base: ident(spec.Base)}
	for _, mix := range spec.Mixins {
		def.Mixins = append(def.Mixins, ident(mix))
	}

	memberNames := make([]string, 0, len(spec.Members))
	for mn := range spec.Members {
		memberNames = append(memberNames, mn)
	}
	sort.Strings(memberNames)

	for _, mn := range memberNames {
		ms := spec.Members[mn]
		mname := ident(mn)
		switch ms.Kind {
		case "abstract":
			if ms.Delegates {
				return unit.Def{}, fmt.Errorf("unit %q: abstract member %q cannot delegate", name, mname)
			}
			def.Members = append(def.Members, member.Member{
				Name: mname,
				Kind: member.Abstract,
			})
		case "concrete", "":
			label := ms.Trace
			if label == "" {
				label = name + "." + mname
			}
			def.Members = append(def.Members, member.Member{
				Name:      mname,
				Kind:      member.Concrete,
				Delegates: ms.Delegates,
				Body:      TraceBody(label, ms.Delegates),
			})
		default:
			return unit.Def{}, fmt.Errorf("unit %q: member %q has unknown kind %q (expected abstract or concrete)", name, mname, ms.Kind)
		}
	}
	return def, nil
}

// ident NFC-normalizes a name so manifests written with different Unicode
// compositions address the same unit.
func ident(s string) string {
	return norm.NFC.String(s)
}
