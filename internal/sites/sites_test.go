package sites

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/soul23/healthchecker/internal/domain"
)

const sample = `{
  "internos": {
    "vps_soul23": "https://soul23.example/health",
    "panel": "https://panel.soul23.example"
  },
  "sitios_empresa": {
    "landing": "https://soul23.example",
    "formbricks": "https://forms.example/api/health"
  },
  "externos": {
    "openai": "https://status.openai.com",
    "google_gemini": "https://gemini.google.com",
    "custom": {"url": "https://status.example", "kind": "statuspage"}
  }
}`

func TestParse_OrderAndKinds(t *testing.T) {
	g, err := Parse([]byte(sample), DefaultKinds)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.Len() != 7 {
		t.Fatalf("want 7 targets, got %d", g.Len())
	}
	if g.Internal[0].Name != "vps_soul23" || g.Internal[0].Kind != domain.KindSelfCheck {
		t.Fatalf("unexpected first internal: %+v", g.Internal[0])
	}
	if g.Internal[1].Kind != domain.KindGeneric {
		t.Fatalf("panel should be generic: %+v", g.Internal[1])
	}
	if g.Company[1].Kind != domain.KindJSONStatus {
		t.Fatalf("formbricks kind: %+v", g.Company[1])
	}
	wantExt := []domain.Target{
		{Name: "openai", Address: "https://status.openai.com", Kind: domain.KindStatusPage},
		{Name: "google_gemini", Address: "https://gemini.google.com", Kind: domain.KindIncidents},
		{Name: "custom", Address: "https://status.example", Kind: domain.KindStatusPage},
	}
	for i, w := range wantExt {
		if g.External[i] != w {
			t.Fatalf("external[%d]=%+v want %+v", i, g.External[i], w)
		}
	}
}

func TestParse_MissingGroupsAreEmpty(t *testing.T) {
	g, err := Parse([]byte(`{"externos": {"a": "https://a.example"}, "internos": null}`), DefaultKinds)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(g.Internal) != 0 || len(g.Company) != 0 || len(g.External) != 1 {
		t.Fatalf("unexpected groups: %+v", g)
	}
}

func TestParse_DuplicateKeepsFirstPositionLastValue(t *testing.T) {
	g, err := Parse([]byte(`{"externos": {"a": "https://one", "b": "https://b", "a": "https://two"}}`), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(g.External) != 2 || g.External[0].Name != "a" || g.External[0].Address != "https://two" {
		t.Fatalf("unexpected: %+v", g.External)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := []string{
		``,
		`[1,2]`,
		`{"internos": "nope"`,
		`{"internos": ["x"]}`,
		`{"externos": {"x": {"url": "https://x", "kind": "carrier-pigeon"}}}`,
		`{"externos": {"x": {"kind": "generic"}}}`,
	}
	for _, c := range cases {
		if _, err := Parse([]byte(c), DefaultKinds); !errors.Is(err, ErrInvalid) {
			t.Fatalf("Parse(%q) want ErrInvalid, got %v", c, err)
		}
	}
}

func TestFile_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sites.json")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := NewFile(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if g.Len() != 7 {
		t.Fatalf("want 7, got %d", g.Len())
	}

	_, err = NewFile(filepath.Join(dir, "missing.json")).Load()
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("want ErrUnreadable, got %v", err)
	}
}
