// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package abstracts renders the per-paper LaTeX fragments: the abstracts
// booklet page, the standalone source converted to HTML, and the proceedings
// page that includes the stamped PDF. All three are rendered from the same
// submission record.
package abstracts

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/proceedings-engine/internal/latex"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// Renderer produces LaTeX for one submission at a time.
type Renderer struct {
	Event types.EventConfig
	Table *latex.Table
}

// NewRenderer returns a Renderer escaping text with table. A nil table only
// trims fields.
func NewRenderer(event types.EventConfig, table *latex.Table) *Renderer {
	return &Renderer{Event: event, Table: table}
}

// FileName returns the fragment file name of a submission.
func FileName(id int) string {
	return "p" + strconv.Itoa(id) + ".tex"
}

// escaped holds a submission's text fields after substitution.
type escaped struct {
	id       string
	title    string
	keywords string
	abstract string
	email    string
	authors  []escapedAuthor
	affs     []string
	doi      string
}

type escapedAuthor struct {
	family  string
	given   string
	aff     int
	contact bool
}

func (r *Renderer) escape(sub types.Submission) escaped {
	e := escaped{
		id:       strconv.Itoa(sub.ID),
		title:    r.Table.Apply(sub.Title),
		keywords: r.Table.Apply(sub.Keywords),
		abstract: r.Table.Apply(sub.Abstract),
		email:    strings.TrimSpace(sub.ContactEmail),
		doi:      sub.DOI,
	}
	for _, aff := range sub.Affiliations() {
		e.affs = append(e.affs, r.Table.Apply(aff))
	}
	for _, a := range sub.Authors {
		e.authors = append(e.authors, escapedAuthor{
			family:  r.Table.Apply(a.FamilyName),
			given:   r.Table.Apply(a.GivenName),
			aff:     sub.AffiliationIndex(a),
			contact: sub.IsContact(a),
		})
	}
	return e
}

// RenderBooklet returns the abstracts-booklet fragment of sub.
func (r *Renderer) RenderBooklet(sub types.Submission) string {
	e := r.escape(sub)
	var b strings.Builder

	b.WriteString(latex.Warning)
	b.WriteString("\\newpage\n\n")
	if e.doi == "" {
		fmt.Fprintf(&b, "\\backgroundsetup{contents={%s},scale=7}\n", r.Event.Labels.WorkInProgress)
		b.WriteString("\\BgThispage\n")
	}
	r.writeBanner(&b, e)
	r.writeIndex(&b, e)

	fmt.Fprintf(&b, "%%\n%% %s\n", r.Event.Labels.Title)
	b.WriteString("\\begin{flushleft}\n")
	writeTOCEntry(&b, e)
	fmt.Fprintf(&b, "{\\Large \\textbf{%s}}\\label{ref:%s}\n", e.title, e.id)
	b.WriteString("\\end{flushleft}\n")

	r.writeBody(&b, e)
	return b.String()
}

// RenderHTMLSource returns a standalone article of sub for pandoc. It has no
// index entries, TOC entry, or label. pdfTagged adds a link to the stamped
// PDF.
func (r *Renderer) RenderHTMLSource(sub types.Submission, pdfTagged bool) string {
	e := r.escape(sub)
	var b strings.Builder

	b.WriteString("\\documentclass[a4paper]{article}\n")
	b.WriteString("\\input{../config_html.tex}\n")
	b.WriteString("\\begin{document}\n")
	b.WriteString(latex.Warning)
	b.WriteString("\n")
	b.WriteString("\\begin{flushleft}\n")
	fmt.Fprintf(&b, "{\\Large \\textbf{%s}}\n", e.title)
	b.WriteString("\\end{flushleft}\n")

	r.writeBody(&b, e)
	if pdfTagged {
		fmt.Fprintf(&b, "\\vfill PDF : \\href{%s}{%s}\n", r.Event.PDFURL(sub.ID), r.Event.Labels.Download)
	}
	b.WriteString("\\end{document}\n")
	return b.String()
}

// RenderProceedingsPage returns the proceedings-booklet page of sub: TOC
// entry, index entries and label, followed by the stamped PDF at pdfRel
// (relative to the booklet directory).
func (r *Renderer) RenderProceedingsPage(sub types.Submission, pdfRel string) string {
	e := r.escape(sub)
	var b strings.Builder

	b.WriteString(latex.Warning)
	b.WriteString("\\cleardoublepage\n\n")
	r.writeBanner(&b, e)
	r.writeIndex(&b, e)
	writeTOCEntry(&b, e)
	fmt.Fprintf(&b, "\\label{ref:%s}\n", e.id)
	fmt.Fprintf(&b, "\\includepdf[pages=-,pagecommand={\\thispagestyle{fancyplain}},width=1.05\\paperwidth]{%s}\n",
		filepath.ToSlash(pdfRel))
	return b.String()
}

func (r *Renderer) writeBanner(b *strings.Builder, e escaped) {
	b.WriteString(latex.BannerRule + "\n")
	fmt.Fprintf(b, "%%%% %s %s\n", r.Event.Labels.Paper, e.id)
	b.WriteString(latex.BannerRule + "\n\n")
}

func (r *Renderer) writeIndex(b *strings.Builder, e escaped) {
	fmt.Fprintf(b, "%% %s\n", r.Event.Labels.Indexing)
	for _, a := range e.authors {
		fmt.Fprintf(b, "\\index{%s%s@%s, %s}\n",
			latex.IndexKey(a.family), latex.IndexKey(a.given), a.family, a.given)
	}
}

func writeTOCEntry(b *strings.Builder, e escaped) {
	b.WriteString("\\phantomsection\\addtocounter{section}{1}\n")
	fmt.Fprintf(b, "\\addcontentsline{toc}{section}{%s}\n", e.title)
}

// writeBody writes authors, contact, affiliations, keywords, abstract and the
// DOI footer.
func (r *Renderer) writeBody(b *strings.Builder, e escaped) {
	labels := r.Event.Labels

	fmt.Fprintf(b, "%%\n%% %s\n", labels.Authors)
	parts := make([]string, len(e.authors))
	for i, a := range e.authors {
		parts[i] = a.given + " " + a.family + superscript(a)
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("\\\\[2mm]\n")
	if e.email != "" {
		fmt.Fprintf(b, "$^{\\star}$ \\Letter : \\url{%s}\\\\[2mm]\n", e.email)
	}
	for i, aff := range e.affs {
		fmt.Fprintf(b, "{\\footnotesize $^{%d}$ %s}\\\\\n", i+1, aff)
	}

	fmt.Fprintf(b, "[4mm]\n%%\n%% %s\n", labels.Keywords)
	fmt.Fprintf(b, "\\noindent \\textbf{%s : } %s\\\\[4mm]\n", labels.Keywords, e.keywords)
	fmt.Fprintf(b, "%%\n%% %s\n", labels.Abstract)
	fmt.Fprintf(b, "\\noindent \\textbf{%s : } \n\n", labels.Abstract)
	b.WriteString("{\\normalsize\n")
	b.WriteString(e.abstract)
	if e.doi != "" {
		fmt.Fprintf(b, "\n\n \\vfill doi : \\url{https://doi.org/%s}\n", e.doi)
	} else {
		fmt.Fprintf(b, "\n\n \\vfill %s\n", labels.WorkInProgress)
	}
	b.WriteString("\n}\n \n")
}

// superscript returns the affiliation and contact marks of an author.
func superscript(a escapedAuthor) string {
	var marks []string
	if a.aff > 0 {
		marks = append(marks, strconv.Itoa(a.aff))
	}
	if a.contact {
		marks = append(marks, "\\star")
	}
	if len(marks) == 0 {
		return ""
	}
	return "$^{" + strings.Join(marks, ",") + "}$"
}
