package resume

import (
	"encoding/json"
	"errors"
	"testing"
)

func kinds(blocks []Block) []BlockKind {
	out := make([]BlockKind, len(blocks))
	for i, b := range blocks {
		out[i] = b.Kind
	}
	return out
}

func TestFlattenCanonicalOrder(t *testing.T) {
	blocks := Flatten(Default().Content)
	want := []BlockKind{
		KindHeader,
		KindSectionTitle, KindSummary,
		KindSectionTitle, KindJob, KindJob, KindJob,
		KindSectionTitle, KindEducation,
		KindSectionTitle, KindSkills,
	}
	got := kinds(blocks)
	if len(got) != len(want) {
		t.Fatalf("expected %d blocks, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("block %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if blocks[3].Title != TitleExperience {
		t.Fatalf("expected experience title, got %q", blocks[3].Title)
	}
	if blocks[4].BulletCount() != 4 {
		t.Fatalf("expected 4 bullets, got %d", blocks[4].BulletCount())
	}
}

func TestFlattenOmitsEmptySections(t *testing.T) {
	c := Content{
		PersonalInfo: PersonalInfo{Name: "Jane"},
		Summary:      "   ",
		Skills:       []string{"Go"},
	}
	got := kinds(Flatten(c))
	want := []BlockKind{KindHeader, KindSectionTitle, KindSkills}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFlattenHeaderOnly(t *testing.T) {
	got := Flatten(Content{})
	if len(got) != 1 || got[0].Kind != KindHeader {
		t.Fatalf("expected only a header block, got %v", kinds(got))
	}
}

func TestBlocksDoNotAliasContent(t *testing.T) {
	c := Default().Content
	blocks := Flatten(c)
	c.Experience[0].Description[0] = "changed"
	c.Skills[0] = "changed"
	if blocks[4].Job.Description[0] == "changed" {
		t.Fatalf("job block shares description slice with content")
	}
	if blocks[len(blocks)-1].Skills[0] == "changed" {
		t.Fatalf("skills block shares slice with content")
	}
}

func TestSkillsText(t *testing.T) {
	b := SkillsBlock([]string{"Go", "SQL"})
	if got := b.SkillsText(); got != "Go • SQL" {
		t.Fatalf("unexpected skills text %q", got)
	}
}

func TestDateRange(t *testing.T) {
	cases := []struct {
		in   WorkExperience
		want string
	}{
		{WorkExperience{StartDate: "2020-01", Current: true}, "2020-01 - Present"},
		{WorkExperience{StartDate: "2018-03", EndDate: "2019-12"}, "2018-03 - 2019-12"},
		{WorkExperience{StartDate: "2018-03"}, "2018-03"},
	}
	for _, tc := range cases {
		if got := tc.in.DateRange(); got != tc.want {
			t.Fatalf("DateRange() = %q, want %q", got, tc.want)
		}
	}
}

func TestValidateJSONAcceptsDefault(t *testing.T) {
	raw, err := json.Marshal(Default())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := ValidateJSON(raw); err != nil {
		t.Fatalf("default document rejected: %v", err)
	}
	doc, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Content.PersonalInfo.Name != "John Doe" {
		t.Fatalf("unexpected name %q", doc.Content.PersonalInfo.Name)
	}
}

func TestValidateJSONRejectsBadFormat(t *testing.T) {
	raw := []byte(`{"content":{"personalInfo":{}},"format":{"fontSize":-1,"lineHeight":1.4,"pageSize":"A5","margins":{"top":0,"right":0,"bottom":0,"left":0}}}`)
	err := ValidateJSON(raw)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(schemaErr.Violations) < 2 {
		t.Fatalf("expected violations for fontSize and pageSize, got %v", schemaErr.Violations)
	}
}
