// Package sites loads the service group document that lists every monitored
// target. The document is JSON (or YAML) with the keys internos,
// sitios_empresa and externos, each a name -> address mapping. An address may
// also be written as {"url": ..., "kind": ...} to pick the probe strategy.
package sites

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soul23/healthchecker/internal/domain"
)

var (
	ErrUnreadable = errors.New("service groups unreadable")
	ErrInvalid    = errors.New("service groups invalid")
)

const (
	KeyInternal = "internos"
	KeyCompany  = "sitios_empresa"
	KeyExternal = "externos"
)

// DefaultKinds assigns probe kinds to plain string entries by name.
var DefaultKinds = map[string]domain.ProbeKind{
	"vps_soul23":    domain.KindSelfCheck,
	"openai":        domain.KindStatusPage,
	"canva":         domain.KindStatusPage,
	"cloudflare":    domain.KindStatusPage,
	"google_gemini": domain.KindIncidents,
	"formbricks":    domain.KindJSONStatus,
}

// Source supplies the service groups for one run.
type Source interface {
	Load() (domain.Groups, error)
}

// File reads the document from disk on every Load.
type File struct {
	Path  string
	Kinds map[string]domain.ProbeKind
}

func NewFile(path string) *File {
	return &File{Path: path, Kinds: DefaultKinds}
}

func (f *File) Load() (domain.Groups, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		return domain.Groups{}, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return Parse(raw, f.Kinds)
}

// Parse decodes a service group document. Missing groups are empty.
func Parse(raw []byte, kinds map[string]domain.ProbeKind) (domain.Groups, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return domain.Groups{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return domain.Groups{}, fmt.Errorf("%w: empty document", ErrInvalid)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return domain.Groups{}, fmt.Errorf("%w: top level must be an object", ErrInvalid)
	}

	var out domain.Groups
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, root.Content[i+1]
		var dst *domain.Group
		switch key {
		case KeyInternal:
			dst = &out.Internal
		case KeyCompany:
			dst = &out.Company
		case KeyExternal:
			dst = &out.External
		default:
			continue
		}
		g, err := parseGroup(key, val, kinds)
		if err != nil {
			return domain.Groups{}, err
		}
		*dst = g
	}
	return out, nil
}

func parseGroup(group string, n *yaml.Node, kinds map[string]domain.ProbeKind) (domain.Group, error) {
	if isNull(n) {
		return nil, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s must be an object", ErrInvalid, group)
	}

	out := make(domain.Group, 0, len(n.Content)/2)
	pos := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		t, err := parseTarget(name, n.Content[i+1], kinds)
		if err != nil {
			return nil, fmt.Errorf("%w: %s.%s: %v", ErrInvalid, group, name, err)
		}
		// a repeated name keeps its first position and takes the last value
		if at, ok := pos[name]; ok {
			out[at] = t
			continue
		}
		pos[name] = len(out)
		out = append(out, t)
	}
	return out, nil
}

type targetSpec struct {
	URL  string `yaml:"url"`
	Kind string `yaml:"kind"`
}

func parseTarget(name string, n *yaml.Node, kinds map[string]domain.ProbeKind) (domain.Target, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if isNull(n) || n.Value == "" {
			return domain.Target{}, errors.New("empty address")
		}
		kind, ok := kinds[name]
		if !ok {
			kind = domain.KindGeneric
		}
		return domain.Target{Name: name, Address: n.Value, Kind: kind}, nil
	case yaml.MappingNode:
		var spec targetSpec
		if err := n.Decode(&spec); err != nil {
			return domain.Target{}, err
		}
		if spec.URL == "" {
			return domain.Target{}, errors.New("missing url")
		}
		kind, err := domain.ParseProbeKind(spec.Kind)
		if err != nil {
			return domain.Target{}, err
		}
		return domain.Target{Name: name, Address: spec.URL, Kind: kind}, nil
	default:
		return domain.Target{}, errors.New("address must be a string or an object")
	}
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}
