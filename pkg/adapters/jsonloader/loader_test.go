package jsonloader

import (
	"context"
	"strings"
	"testing"

	"github.com/user/heatgrid/pkg/mocks"
	"github.com/user/heatgrid/pkg/timegrid"
)

const swedenBirths = `{
	"entity": "Sweden",
	"metric": "births",
	"years": [2000, 2001],
	"data": [
		{"year": 2000, "month": 1, "value": 7500, "births": 7500, "population": 8800000, "source": "HMD"},
		{"year": 2000, "month": 2, "value": 7100, "source": "HMD"},
		{"year": 2001, "month": 1, "value": null, "source": "UN"}
	],
	"colorScale": {"domain": [7100, 7500]}
}`

func TestLoadOne(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Files["/data/Sweden__births.json"] = []byte(swedenBirths)
	l := New(fs, "/data", mocks.NewLogger())

	ds, err := l.LoadOne(context.Background(), "Sweden", "births")
	if err != nil {
		t.Fatalf("LoadOne: %v", err)
	}

	if ds.EntityID != "Sweden" || ds.MetricID != "births" {
		t.Errorf("unexpected identity: %s/%s", ds.EntityID, ds.MetricID)
	}
	if len(ds.Cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(ds.Cells))
	}
	if len(ds.Years) != 2 || ds.Years[0] != 2000 || ds.Years[1] != 2001 {
		t.Errorf("unexpected years: %v", ds.Years)
	}

	c := ds.CellAt(2000, 1)
	if c == nil || c.Value == nil || *c.Value != 7500 {
		t.Errorf("cell 2000-01 = %+v", c)
	}
	if c.Births == nil || *c.Births != 7500 || c.Population == nil {
		t.Errorf("cell 2000-01 missing extra fields: %+v", c)
	}
	if c.Source != "HMD" {
		t.Errorf("cell 2000-01 source = %q", c.Source)
	}

	// JSON null stays a nil value.
	if c := ds.CellAt(2001, 1); c == nil || c.Value != nil {
		t.Errorf("cell 2001-01 should have a nil value: %+v", c)
	}

	// The file's color scale domain is adopted as-is.
	if d := ds.Scale.Domain; d[0] != 7100 || d[len(d)-1] != 7500 {
		t.Errorf("unexpected scale domain: %v", d)
	}
	if ds.Scale.Family != timegrid.FamilySequential {
		t.Errorf("births should map to a sequential palette, got %q", ds.Scale.Family)
	}
}

func TestLoadOne_DerivesScaleWhenFileHasNone(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Files["/data/Norway__births.json"] = []byte(`{
		"entity": "Norway",
		"metric": "births",
		"data": [
			{"year": 2000, "month": 1, "value": 10, "source": "HMD"},
			{"year": 2000, "month": 2, "value": 30, "source": "HMD"}
		]
	}`)
	l := New(fs, "/data", mocks.NewLogger())

	ds, err := l.LoadOne(context.Background(), "Norway", "births")
	if err != nil {
		t.Fatalf("LoadOne: %v", err)
	}
	// Exact min/max of the values.
	if d := ds.Scale.Domain; d[0] != 10 || d[len(d)-1] != 30 {
		t.Errorf("expected derived domain [10 30], got %v", d)
	}
}

func TestLoadOne_Errors(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Files["/data/Bad__births.json"] = []byte(`{"entity": "Bad", "data": [{"year": 2000, "month": 13}]}`)
	fs.Files["/data/Broken__births.json"] = []byte(`{not json`)
	l := New(fs, "/data", mocks.NewLogger())

	if _, err := l.LoadOne(context.Background(), "Missing", "births"); err == nil {
		t.Error("expected error for a missing file")
	}
	if _, err := l.LoadOne(context.Background(), "Bad", "births"); err == nil {
		t.Error("expected error for an out-of-range month")
	}
	if _, err := l.LoadOne(context.Background(), "Broken", "births"); err == nil {
		t.Error("expected error for malformed JSON")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := l.LoadOne(ctx, "Sweden", "births"); err == nil {
		t.Error("expected error for a cancelled context")
	}
}

func TestLoadMany_OmitsFailures(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.Files["/data/Sweden__births.json"] = []byte(swedenBirths)
	log := mocks.NewLogger()
	l := New(fs, "/data", log)

	out, err := l.LoadMany(context.Background(), []string{"Sweden", "Atlantis"}, "births")
	if err != nil {
		t.Fatalf("LoadMany: %v", err)
	}

	if len(out) != 1 {
		t.Fatalf("expected 1 loaded dataset, got %d", len(out))
	}
	if _, ok := out["Sweden"]; !ok {
		t.Error("Sweden should have loaded")
	}
	if len(log.WarnMessages) != 1 || !strings.Contains(log.WarnMessages[0], "Atlantis") {
		t.Errorf("expected one warning naming the failed entity, got %v", log.WarnMessages)
	}
}

func TestNormalizeEntityID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Japan", "Japan"},
		{"United States", "United-States"},
		{"Cote d'Ivoire", "Cote-dIvoire"},
		{"St. Kitts and Nevis", "St-Kitts-and-Nevis"},
		{"Korea (Rep.)", "Korea-Rep"},
	}
	for _, tc := range cases {
		if got := NormalizeEntityID(tc.in); got != tc.want {
			t.Errorf("NormalizeEntityID(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
