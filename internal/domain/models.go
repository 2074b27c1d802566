package domain

import "fmt"

// ProbeKind selects the strategy used to check a Target.
type ProbeKind string

const (
	KindGeneric    ProbeKind = "generic"
	KindSelfCheck  ProbeKind = "selfcheck"
	KindStatusPage ProbeKind = "statuspage"
	KindIncidents  ProbeKind = "incidents"
	KindJSONStatus ProbeKind = "jsonstatus"
)

// ParseProbeKind maps a configuration value onto a ProbeKind. Empty means generic.
func ParseProbeKind(s string) (ProbeKind, error) {
	switch k := ProbeKind(s); k {
	case "":
		return KindGeneric, nil
	case KindGeneric, KindSelfCheck, KindStatusPage, KindIncidents, KindJSONStatus:
		return k, nil
	default:
		return "", fmt.Errorf("unknown probe kind %q", s)
	}
}

// Target is one monitored endpoint. Address is a URL or a bare host/IP.
type Target struct {
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Kind    ProbeKind `json:"kind"`
}

// Group is an ordered list of targets; names are unique within a group.
type Group []Target

// Groups holds the three service groups of one run.
type Groups struct {
	Internal Group
	Company  Group
	External Group
}

// Len returns the total number of targets across all groups.
func (g Groups) Len() int {
	return len(g.Internal) + len(g.Company) + len(g.External)
}
