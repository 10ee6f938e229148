package resume

import (
	"slices"
	"strings"
)

// BlockKind tags the variant carried by a Block.
type BlockKind string

const (
	KindHeader       BlockKind = "header"
	KindSectionTitle BlockKind = "section-title"
	KindSummary      BlockKind = "summary"
	KindJob          BlockKind = "job"
	KindEducation    BlockKind = "education"
	KindSkills       BlockKind = "skills"
)

// SkillsSeparator joins skills both in rendered output and in length
// estimates.
const SkillsSeparator = " • "

// Section titles emitted by Flatten.
const (
	TitleSummary    = "Professional Summary"
	TitleExperience = "Professional Experience"
	TitleEducation  = "Education"
	TitleSkills     = "Skills"
)

// Block is one atomic, measurable unit of resume content. Only the field
// matching Kind is set. Blocks carry no position; pages assign that.
type Block struct {
	Kind      BlockKind       `json:"kind"`
	Header    *PersonalInfo   `json:"header,omitempty"`
	Title     string          `json:"title,omitempty"`
	Text      string          `json:"text,omitempty"`
	Job       *WorkExperience `json:"job,omitempty"`
	Education *Education      `json:"education,omitempty"`
	Skills    []string        `json:"skills,omitempty"`
}

func HeaderBlock(p PersonalInfo) Block { return Block{Kind: KindHeader, Header: &p} }

func SectionTitleBlock(title string) Block { return Block{Kind: KindSectionTitle, Title: title} }

func SummaryBlock(text string) Block { return Block{Kind: KindSummary, Text: text} }

func JobBlock(w WorkExperience) Block {
	w.Description = slices.Clone(w.Description)
	return Block{Kind: KindJob, Job: &w}
}

func EducationBlock(e Education) Block { return Block{Kind: KindEducation, Education: &e} }

func SkillsBlock(skills []string) Block {
	return Block{Kind: KindSkills, Skills: slices.Clone(skills)}
}

// BulletCount is the number of description lines of a job block.
func (b Block) BulletCount() int {
	if b.Job == nil {
		return 0
	}
	return len(b.Job.Description)
}

// SkillsText is the skills joined with SkillsSeparator.
func (b Block) SkillsText() string { return strings.Join(b.Skills, SkillsSeparator) }

// Flatten turns resume content into blocks in canonical order: header,
// summary, experience, education, skills. A section with no content is
// omitted together with its title.
func Flatten(c Content) []Block {
	blocks := make([]Block, 0, 4+len(c.Experience)+len(c.Education)+4)
	blocks = append(blocks, HeaderBlock(c.PersonalInfo))

	if summary := strings.TrimSpace(c.Summary); summary != "" {
		blocks = append(blocks, SectionTitleBlock(TitleSummary), SummaryBlock(c.Summary))
	}

	if len(c.Experience) > 0 {
		blocks = append(blocks, SectionTitleBlock(TitleExperience))
		for _, job := range c.Experience {
			blocks = append(blocks, JobBlock(job))
		}
	}

	if len(c.Education) > 0 {
		blocks = append(blocks, SectionTitleBlock(TitleEducation))
		for _, edu := range c.Education {
			blocks = append(blocks, EducationBlock(edu))
		}
	}

	if len(c.Skills) > 0 {
		blocks = append(blocks, SectionTitleBlock(TitleSkills), SkillsBlock(c.Skills))
	}

	return blocks
}
