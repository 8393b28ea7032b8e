package stats

import (
	"strings"
	"testing"

	"github.com/gedtools/gedserve/internal/parser"
)

const statsGedcom = `0 HEAD
1 CHAR UTF-8
0 @I1@ INDI
1 NAME Jean /Dupont/
1 BIRT
2 DATE 12 JUN 1920
2 PLAC Nantes
0 @I2@ INDI
1 NAME Marie /Dupont/
1 BIRT
2 DATE ABT 1925
0 @I3@ INDI
1 NAME Luc /Martin/
0 @F1@ FAM
1 HUSB @I1@
1 WIFE @I2@
1 CHIL @I3@
0 TRLR
`

func computeFixture(t *testing.T) Snapshot {
	t.Helper()
	doc, warnings, err := parser.Parse(strings.NewReader(statsGedcom))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("fixture warnings: %v", warnings)
	}
	return Compute(doc)
}

func TestComputeCounts(t *testing.T) {
	snap := computeFixture(t)
	if snap.Records != 6 {
		t.Errorf("Records = %d, want 6", snap.Records)
	}
	if snap.Individuals != 3 {
		t.Errorf("Individuals = %d, want 3", snap.Individuals)
	}
	if snap.Families != 1 {
		t.Errorf("Families = %d, want 1", snap.Families)
	}
	if snap.RecordsByType["HEAD"] != 1 || snap.RecordsByType["TRLR"] != 1 {
		t.Errorf("RecordsByType = %v, want HEAD and TRLR counted", snap.RecordsByType)
	}
}

func TestComputeAvgLinesPerIndi(t *testing.T) {
	snap := computeFixture(t)
	// Sub-lines per individual: 4, 3 and 1, average 8/3.
	want := 8.0 / 3.0
	if diff := snap.AvgLinesPerIndi - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("AvgLinesPerIndi = %v, want %v", snap.AvgLinesPerIndi, want)
	}
}

func TestComputeMaxDepth(t *testing.T) {
	snap := computeFixture(t)
	// Record, BIRT, DATE.
	if snap.MaxDepth != 3 {
		t.Errorf("MaxDepth = %d, want 3", snap.MaxDepth)
	}
}

func TestComputeTagPaths(t *testing.T) {
	snap := computeFixture(t)
	counts := make(map[string]int, len(snap.TagPaths))
	for _, tp := range snap.TagPaths {
		counts[tp.Path] = tp.Count
	}
	for path, want := range map[string]int{
		"INDI":           3,
		"INDI/NAME":      3,
		"INDI/BIRT":      2,
		"INDI/BIRT/DATE": 2,
		"INDI/BIRT/PLAC": 1,
		"FAM":            1,
		"FAM/CHIL":       1,
	} {
		if counts[path] != want {
			t.Errorf("tag path %s = %d, want %d", path, counts[path], want)
		}
	}
	if _, ok := counts["HEAD"]; ok {
		t.Errorf("tag paths include HEAD: %v", counts)
	}
	// Descending count order.
	for i := 1; i < len(snap.TagPaths); i++ {
		if snap.TagPaths[i].Count > snap.TagPaths[i-1].Count {
			t.Fatalf("tag paths not sorted: %v", snap.TagPaths)
		}
	}
}

func TestComputeSurnames(t *testing.T) {
	snap := computeFixture(t)
	if len(snap.Surnames) != 2 {
		t.Fatalf("Surnames = %v, want 2 entries", snap.Surnames)
	}
	if snap.Surnames[0].Surname != "Dupont" || snap.Surnames[0].Count != 2 {
		t.Errorf("Surnames[0] = %v, want Dupont x2", snap.Surnames[0])
	}
	if snap.Surnames[1].Surname != "Martin" || snap.Surnames[1].Count != 1 {
		t.Errorf("Surnames[1] = %v, want Martin x1", snap.Surnames[1])
	}
}

func TestComputeBirthSpan(t *testing.T) {
	snap := computeFixture(t)
	if snap.EarliestBirth != 1920 {
		t.Errorf("EarliestBirth = %d, want 1920", snap.EarliestBirth)
	}
	if snap.LatestBirth != 1925 {
		t.Errorf("LatestBirth = %d, want 1925", snap.LatestBirth)
	}
}

func TestComputeEmptyDocument(t *testing.T) {
	doc, _, err := parser.Parse(strings.NewReader("0 HEAD\n0 TRLR\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	snap := Compute(doc)
	if snap.Records != 2 || snap.Individuals != 0 || snap.AvgLinesPerIndi != 0 {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(snap.TagPaths) != 0 || len(snap.Surnames) != 0 {
		t.Errorf("expected no tag paths or surnames: %+v", snap)
	}
}
