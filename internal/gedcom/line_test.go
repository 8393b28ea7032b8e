package gedcom

import "testing"

func sampleIndi() *Line {
	return &Line{Level: 0, Tag: "@I1@", Payload: "INDI", SubLines: []*Line{
		{Level: 1, Tag: "NAME", Payload: "Gatien /BOUYER/", SubLines: []*Line{
			{Level: 2, Tag: "SURN", Payload: "BOUYER"},
			{Level: 2, Tag: "GIVN", Payload: "Gatien"},
		}},
		{Level: 1, Tag: "FAMS", Payload: "@F1@"},
		{Level: 1, Tag: "FAMS", Payload: "@F2@"},
		{Level: 1, Tag: "SEX", Payload: "M"},
	}}
}

func TestLineSub(t *testing.T) {
	indi := sampleIndi()
	if got := indi.Sub("SEX"); got == nil || got.Payload != "M" {
		t.Errorf("Sub(SEX) = %v, want the SEX line", got)
	}
	if got := indi.Sub("BIRT"); got != nil {
		t.Errorf("Sub(BIRT) = %v, want nil", got)
	}
	if got := indi.Sub("FAMS"); got == nil || got.Payload != "@F1@" {
		t.Errorf("Sub(FAMS) = %v, want the first FAMS line", got)
	}
}

func TestLineSubAll(t *testing.T) {
	indi := sampleIndi()
	fams := indi.SubAll("FAMS")
	if len(fams) != 2 || fams[0].Payload != "@F1@" || fams[1].Payload != "@F2@" {
		t.Errorf("SubAll(FAMS) = %v, want both FAMS lines in order", fams)
	}
	if got := indi.SubAll("FAMC"); len(got) != 0 {
		t.Errorf("SubAll(FAMC) = %v, want empty", got)
	}
}

func TestLineSubPayload(t *testing.T) {
	indi := sampleIndi()
	if got := indi.SubPayload("NAME"); got != "Gatien /BOUYER/" {
		t.Errorf("SubPayload(NAME) = %q", got)
	}
	if got := indi.SubPayload("BIRT"); got != "" {
		t.Errorf("SubPayload(BIRT) = %q, want empty", got)
	}
}

func TestLineString(t *testing.T) {
	line := &Line{Level: 1, Tag: "SEX", Payload: "M"}
	if got := line.String(); got != "1 SEX M" {
		t.Errorf("String() = %q", got)
	}
	empty := &Line{Level: 1, Tag: "BIRT"}
	if got := empty.String(); got != "1 BIRT" {
		t.Errorf("String() without payload = %q", got)
	}
}

func TestLineAllSubLines(t *testing.T) {
	indi := sampleIndi()
	var tags []string
	for _, line := range indi.AllSubLines() {
		tags = append(tags, line.Tag)
	}
	want := []string{"NAME", "SURN", "GIVN", "FAMS", "FAMS", "SEX"}
	if len(tags) != len(want) {
		t.Fatalf("AllSubLines tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("AllSubLines[%d] = %s, want %s", i, tags[i], want[i])
		}
	}
}

func TestLineSource(t *testing.T) {
	indi := &Line{Level: 0, Tag: "@I1@", Payload: "INDI", SubLines: []*Line{
		{Level: 1, Tag: "NAME", Payload: "Gatien /BOUYER/", SubLines: []*Line{
			{Level: 2, Tag: "SURN", Payload: "BOUYER"},
			{Level: 2, Tag: "GIVN", Payload: "Gatien"},
		}},
		{Level: 1, Tag: "SEX", Payload: "M"},
	}}
	want := "0 @I1@ INDI\n1 NAME Gatien /BOUYER/\n2 SURN BOUYER\n2 GIVN Gatien\n1 SEX M\n"
	if got := indi.Source(); got != want {
		t.Errorf("Source() = %q, want %q", got, want)
	}
}

func TestContinuedPayload(t *testing.T) {
	cases := []struct {
		name string
		line *Line
		want string
	}{
		{
			name: "cont adds newlines",
			line: &Line{Level: 1, Tag: "NOTE", Payload: "This is a text", SubLines: []*Line{
				{Level: 2, Tag: "CONT", Payload: "on several"},
				{Level: 2, Tag: "CONT", Payload: "lines"},
			}},
			want: "This is a text\non several\nlines",
		},
		{
			name: "conc joins directly",
			line: &Line{Level: 1, Tag: "NOTE", Payload: "This is a very", SubLines: []*Line{
				{Level: 2, Tag: "CONC", Payload: " long text th"},
				{Level: 2, Tag: "CONC", Payload: "at is split"},
			}},
			want: "This is a very long text that is split",
		},
		{
			name: "mixed cont and conc",
			line: &Line{Level: 1, Tag: "NOTE", Payload: "First paragraph:", SubLines: []*Line{
				{Level: 2, Tag: "CONT", Payload: "a long sente"},
				{Level: 2, Tag: "CONC", Payload: "nce."},
				{Level: 2, Tag: "CONT", Payload: ""},
				{Level: 2, Tag: "CONT", Payload: "Second paragraph."},
			}},
			want: "First paragraph:\na long sentence.\n\nSecond paragraph.",
		},
	}
	for _, tc := range cases {
		if got := tc.line.ContinuedPayload(); got != tc.want {
			t.Errorf("%s: ContinuedPayload() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestAbsentLineChaining(t *testing.T) {
	var absent *Line
	if absent.Exists() {
		t.Error("nil line should not exist")
	}
	if got := absent.Sub("BIRT"); got != nil {
		t.Errorf("absent.Sub = %v, want nil", got)
	}
	if got := absent.Sub("BIRT").Sub("DATE").SubPayload("TIME"); got != "" {
		t.Errorf("chained absent lookup = %q, want empty", got)
	}
	if got := absent.SubAll("FAMS"); len(got) != 0 {
		t.Errorf("absent.SubAll = %v, want empty", got)
	}
	if got := absent.Value(); got != "" {
		t.Errorf("absent.Value = %q", got)
	}
	if got := absent.ContinuedPayload(); got != "" {
		t.Errorf("absent.ContinuedPayload = %q", got)
	}
	if got := absent.String(); got != "" {
		t.Errorf("absent.String = %q", got)
	}
	if got := absent.Source(); got != "" {
		t.Errorf("absent.Source = %q", got)
	}
	if got := absent.AllSubLines(); len(got) != 0 {
		t.Errorf("absent.AllSubLines = %v, want empty", got)
	}
}
