package prompt

import (
	"fmt"
	"strings"

	"github.com/Saieiei/hpe-project-cty/internal/scm"
)

const DefaultIntro = "You are a senior software engineer helping review a GitHub Pull Request."

// File is one reviewable file. In raw-diff mode only Filename and History
// are used.
type File struct {
	Filename string
	Patch    string
	History  []scm.HistoricalMatch
}

// Input carries everything the assembler embeds.
type Input struct {
	Intro          string
	Title          string
	Author         string
	FilesChanged   int
	Files          []File
	RawDiff        string // whole-diff body; when set the per-file patches are not rendered
	Sections       Sections
	IssueComments  []scm.Comment
	ReviewComments []scm.Comment
}

func (in Input) rawMode() bool {
	return strings.TrimSpace(in.RawDiff) != ""
}

// Assemble renders the review prompt. The layout is fixed: intro and summary
// header, reviewing instructions, the diff body, then the enabled comment
// blocks (conversation first, inline second).
func Assemble(in Input) string {
	var b strings.Builder

	intro := strings.TrimSpace(in.Intro)
	if intro == "" {
		intro = DefaultIntro
	}
	b.WriteString(intro)
	b.WriteString("\n\nWrite a structured, paragraph-style review using GitHub-flavored markdown with the following format:\n\n")

	b.WriteString("## PR Summary\n\n")
	fmt.Fprintf(&b, "**Title**: %s  \n", in.Title)
	fmt.Fprintf(&b, "**Author**: %s  \n", in.Author)
	fmt.Fprintf(&b, "**Total Files Changed**: %d\n\n", in.FilesChanged)

	writeInstructions(&b, in.Sections)

	if in.rawMode() {
		writeRawBody(&b, in)
	} else {
		writeFileBody(&b, in)
	}

	if in.Sections.Has(SectionIssueComments) {
		b.WriteString("## Public PR Comments\n\n")
		b.WriteString(FormatComments(in.IssueComments))
		b.WriteString("\n\n")
	}
	if in.Sections.Has(SectionReviewComments) {
		b.WriteString("## Inline Review Comments\n\n")
		b.WriteString(FormatReviewComments(in.ReviewComments))
		b.WriteString("\n\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeInstructions(b *strings.Builder, sections Sections) {
	b.WriteString("For each file, structure the review in the following order:\n\n")
	b.WriteString("### **File: `<filename>`**\n\n")
	b.WriteString("- Code Summary: Describe the key code changes in that file.\n")
	if sections.Has(SectionIssueComments) || sections.Has(SectionReviewComments) {
		b.WriteString("- Comment Summary: If any PR comments are related to this file, summarize them and include the commenter names.\n")
	}
	if sections.Has(SectionHistory) {
		b.WriteString("- Previous PR Summary: Summarize past PR changes on this file, if available. Mention PR number and contributor.\n")
	}
	b.WriteString("- Recommendations: Suggest improvements or flag concerns if needed.\n\n")
	b.WriteString("Use paragraph format for each section and write professionally.\n\n")
}

func writeFileBody(b *strings.Builder, in Input) {
	for _, f := range in.Files {
		fmt.Fprintf(b, "### File: `%s`\n\n", f.Filename)
		b.WriteString(fenced(f.Patch))
		b.WriteString("\n\n")
		if in.Sections.Has(SectionHistory) {
			b.WriteString("**Previous PR Summary**:\n")
			b.WriteString(FormatHistory(f.History))
			b.WriteString("\n\n")
		}
	}
}

func writeRawBody(b *strings.Builder, in Input) {
	b.WriteString("## Diff\n\n")
	b.WriteString(fenced(in.RawDiff))
	b.WriteString("\n\n")
	if !in.Sections.Has(SectionHistory) || len(in.Files) == 0 {
		return
	}
	b.WriteString("## Previous PR Summary\n\n")
	for _, f := range in.Files {
		fmt.Fprintf(b, "### File: `%s`\n\n", f.Filename)
		b.WriteString(FormatHistory(f.History))
		b.WriteString("\n\n")
	}
}
