// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// EventConfig describes the conference and its publisher. It drives DOI
// construction, public URLs, and DataCite metadata.
type EventConfig struct {
	// Name is the short event code used in DOIs and file names (e.g. "SFT2021").
	Name string `mapstructure:"name" json:"name" yaml:"name"`

	// Title is the full event title, used as the CSL container title.
	Title string `mapstructure:"title" json:"title" yaml:"title"`

	// Publisher is the DataCite publisher.
	Publisher string `mapstructure:"publisher" json:"publisher" yaml:"publisher"`

	// Year is the publication year.
	Year int `mapstructure:"year" json:"year" yaml:"year"`

	// Language is the DataCite language code (e.g. "FR").
	Language string `mapstructure:"language" json:"language" yaml:"language"`

	// ResourceType is the free-text DataCite resource type.
	ResourceType string `mapstructure:"resource_type" json:"resource_type" yaml:"resource_type"`

	// DOIPrefix is the registrant prefix (e.g. "10.25855").
	DOIPrefix string `mapstructure:"doi_prefix" json:"doi_prefix" yaml:"doi_prefix"`

	// BaseURL is the public root under which Abstracts/ and PDF/ are served.
	BaseURL string `mapstructure:"base_url" json:"base_url" yaml:"base_url"`

	// Labels holds the document-language strings printed in the booklets.
	Labels LabelsConfig `mapstructure:"labels" json:"labels" yaml:"labels"`
}

// DOI returns the identifier for a submission: prefix/EVENT-NNN.
func (e EventConfig) DOI(id int) string {
	return fmt.Sprintf("%s/%s-%03d", e.DOIPrefix, e.Name, id)
}

// LandingURL returns the public URL of a submission's HTML abstract.
func (e EventConfig) LandingURL(id int) string {
	return fmt.Sprintf("%sAbstracts/p%d.html", e.base(), id)
}

// AbstractsURL returns the public URL of the abstracts directory.
func (e EventConfig) AbstractsURL() string {
	return e.base() + "Abstracts/"
}

// PDFURL returns the public URL of a submission's stamped PDF.
func (e EventConfig) PDFURL(id int) string {
	return fmt.Sprintf("%sPDF/%d_doi.pdf", e.base(), id)
}

func (e EventConfig) base() string {
	if e.BaseURL == "" || strings.HasSuffix(e.BaseURL, "/") {
		return e.BaseURL
	}
	return e.BaseURL + "/"
}

// LabelsConfig holds the fixed strings written into the booklets.
type LabelsConfig struct {
	Title          string `mapstructure:"title" json:"title" yaml:"title"`
	Authors        string `mapstructure:"authors" json:"authors" yaml:"authors"`
	Indexing       string `mapstructure:"indexing" json:"indexing" yaml:"indexing"`
	Keywords       string `mapstructure:"keywords" json:"keywords" yaml:"keywords"`
	Abstract       string `mapstructure:"abstract" json:"abstract" yaml:"abstract"`
	WorkInProgress string `mapstructure:"work_in_progress" json:"work_in_progress" yaml:"work_in_progress"`
	Paper          string `mapstructure:"paper" json:"paper" yaml:"paper"`
	Theme          string `mapstructure:"theme" json:"theme" yaml:"theme"`
	Annexes        string `mapstructure:"annexes" json:"annexes" yaml:"annexes"`
	AuthorIndex    string `mapstructure:"author_index" json:"author_index" yaml:"author_index"`
	Volume         string `mapstructure:"volume" json:"volume" yaml:"volume"`
	Download       string `mapstructure:"download" json:"download" yaml:"download"`
}

// PathsConfig locates the input exports and the output trees.
type PathsConfig struct {
	// ImportDir holds the CSV exports and the PDF subdirectory.
	ImportDir string `mapstructure:"import_dir" json:"import_dir" yaml:"import_dir"`

	// PDFSubdir is the directory of <ID>.pdf files under ImportDir.
	PDFSubdir string `mapstructure:"pdf_subdir" json:"pdf_subdir" yaml:"pdf_subdir"`

	// Submissions is the submissions CSV file name under ImportDir.
	Submissions string `mapstructure:"submissions" json:"submissions" yaml:"submissions"`

	// Themes is the theme-assignment CSV file name under ImportDir.
	Themes string `mapstructure:"themes" json:"themes" yaml:"themes"`

	// Reviewers is the reviewers CSV file name under ImportDir.
	Reviewers string `mapstructure:"reviewers" json:"reviewers" yaml:"reviewers"`

	// TexDir is the root of the LaTeX output tree (and its templates).
	TexDir string `mapstructure:"tex_dir" json:"tex_dir" yaml:"tex_dir"`

	// HTMLDir is the root of the HTML output tree.
	HTMLDir string `mapstructure:"html_dir" json:"html_dir" yaml:"html_dir"`

	// XMLDir receives DataCite records and the DOI listing.
	XMLDir string `mapstructure:"xml_dir" json:"xml_dir" yaml:"xml_dir"`
}

// SubmissionsCSV returns the path of the submissions export.
func (p PathsConfig) SubmissionsCSV() string { return filepath.Join(p.ImportDir, p.Submissions) }

// ThemesCSV returns the path of the theme-assignment file.
func (p PathsConfig) ThemesCSV() string { return filepath.Join(p.ImportDir, p.Themes) }

// ReviewersCSV returns the path of the reviewers export.
func (p PathsConfig) ReviewersCSV() string { return filepath.Join(p.ImportDir, p.Reviewers) }

// PDFDir returns the directory of submitted and stamped PDFs.
func (p PathsConfig) PDFDir() string { return filepath.Join(p.ImportDir, p.PDFSubdir) }

// AbstractsDir returns the directory of booklet abstract fragments.
func (p PathsConfig) AbstractsDir() string { return filepath.Join(p.TexDir, "Abstracts") }

// HTMLSourceDir returns the directory of standalone LaTeX sources for HTML.
func (p PathsConfig) HTMLSourceDir() string { return filepath.Join(p.TexDir, "Abstracts_Tex_HTML") }

// ProceedingsPagesDir returns the directory of per-paper proceedings pages.
func (p PathsConfig) ProceedingsPagesDir() string { return filepath.Join(p.TexDir, "Actes") }

// AbstractsBookletDir returns the abstracts booklet directory.
func (p PathsConfig) AbstractsBookletDir() string { return filepath.Join(p.TexDir, "Recueil_Resume") }

// ProceedingsBookletDir returns the proceedings booklet directory.
func (p PathsConfig) ProceedingsBookletDir() string { return filepath.Join(p.TexDir, "Recueil_Actes") }

// HTMLAbstractsDir returns the directory of converted HTML abstracts.
func (p PathsConfig) HTMLAbstractsDir() string { return filepath.Join(p.HTMLDir, "Abstracts") }

// FieldsConfig names the CSV columns of the submissions export. Author
// columns are fmt patterns taking the 1-based author number.
type FieldsConfig struct {
	ID                string `mapstructure:"id" json:"id" yaml:"id"`
	Title             string `mapstructure:"title" json:"title" yaml:"title"`
	Keywords          string `mapstructure:"keywords" json:"keywords" yaml:"keywords"`
	Abstract          string `mapstructure:"abstract" json:"abstract" yaml:"abstract"`
	ContactEmail      string `mapstructure:"contact_email" json:"contact_email" yaml:"contact_email"`
	ContactFamilyName string `mapstructure:"contact_family_name" json:"contact_family_name" yaml:"contact_family_name"`
	AuthorFamilyName  string `mapstructure:"author_family_name" json:"author_family_name" yaml:"author_family_name"`
	AuthorGivenName   string `mapstructure:"author_given_name" json:"author_given_name" yaml:"author_given_name"`
	AuthorAffiliation string `mapstructure:"author_affiliation" json:"author_affiliation" yaml:"author_affiliation"`
	DOI               string `mapstructure:"doi" json:"doi" yaml:"doi"`
}

// ConversionBackend selects how external converters are launched.
type ConversionBackend string

const (
	BackendNative    ConversionBackend = "native"
	BackendContainer ConversionBackend = "container"
)

// ConversionConfig holds settings for pandoc and latexmk invocations.
type ConversionConfig struct {
	// Backend is native (binaries on PATH) or container (docker/podman).
	Backend ConversionBackend `mapstructure:"backend" json:"backend" yaml:"backend"`

	// Pandoc is the pandoc binary for the native backend.
	Pandoc string `mapstructure:"pandoc" json:"pandoc" yaml:"pandoc"`

	// Latexmk is the latexmk binary for the native backend.
	Latexmk string `mapstructure:"latexmk" json:"latexmk" yaml:"latexmk"`

	// Image is the container image providing pandoc and latexmk.
	Image string `mapstructure:"image" json:"image" yaml:"image"`

	// Stylesheet is the CSS file linked from generated HTML.
	Stylesheet string `mapstructure:"stylesheet" json:"stylesheet" yaml:"stylesheet"`
}

// SplitBy selects the unit used to balance proceedings volumes.
type SplitBy string

const (
	SplitByPapers SplitBy = "papers"
	SplitByPages  SplitBy = "pages"
)

// BookletConfig holds settings for the compiled booklets.
type BookletConfig struct {
	// Volumes is the number of proceedings volumes (1 disables breaks).
	Volumes int `mapstructure:"volumes" json:"volumes" yaml:"volumes"`

	// SplitBy balances volumes by paper count or by PDF page count.
	SplitBy SplitBy `mapstructure:"split_by" json:"split_by" yaml:"split_by"`

	// ReviewerColumns is the column count of the reviewers table.
	ReviewerColumns int `mapstructure:"reviewer_columns" json:"reviewer_columns" yaml:"reviewer_columns"`

	// AbstractsJob is the latexmk job name of the abstracts booklet.
	AbstractsJob string `mapstructure:"abstracts_job" json:"abstracts_job" yaml:"abstracts_job"`

	// ProceedingsJob is the latexmk job name of the proceedings booklet.
	ProceedingsJob string `mapstructure:"proceedings_job" json:"proceedings_job" yaml:"proceedings_job"`

	// Substitutions optionally points to a TOML file replacing the built-in
	// LaTeX substitution table.
	Substitutions string `mapstructure:"substitutions" json:"substitutions,omitempty" yaml:"substitutions,omitempty"`
}

// LedgerDriver selects the ledger database.
type LedgerDriver string

const (
	LedgerSQLite   LedgerDriver = "sqlite"
	LedgerPostgres LedgerDriver = "postgres"
)

// LedgerConfig holds settings for the publication ledger.
type LedgerConfig struct {
	Driver LedgerDriver `mapstructure:"driver" json:"driver" yaml:"driver"`

	// Path is the SQLite database file.
	Path string `mapstructure:"path" json:"path" yaml:"path"`

	// DSN is the Postgres connection string.
	DSN string `mapstructure:"dsn" json:"dsn,omitempty" yaml:"dsn,omitempty"`
}

// PublishConfig holds settings for uploading the generated site.
type PublishConfig struct {
	// Driver is "s3" or "fs".
	Driver string `mapstructure:"driver" json:"driver" yaml:"driver"`

	Bucket    string `mapstructure:"bucket" json:"bucket" yaml:"bucket"`
	Region    string `mapstructure:"region" json:"region" yaml:"region"`
	Endpoint  string `mapstructure:"endpoint" json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	PathStyle bool   `mapstructure:"path_style" json:"path_style" yaml:"path_style"`

	// Prefix is prepended to every object key (e.g. "DOIeditions/CFT2021/").
	Prefix string `mapstructure:"prefix" json:"prefix" yaml:"prefix"`

	// Root is the destination directory for the fs driver.
	Root string `mapstructure:"root" json:"root" yaml:"root"`

	// AccessKeyID and SecretAccessKey are static S3 credentials, usually
	// filled from the secrets directory. When empty the default AWS
	// credential chain applies.
	AccessKeyID     string `mapstructure:"access_key_id" json:"-" yaml:"-"`
	SecretAccessKey string `mapstructure:"secret_access_key" json:"-" yaml:"-"`
}

// MetricsConfig holds settings for run metrics.
type MetricsConfig struct {
	// Textfile is the Prometheus textfile path written after a build.
	// Empty disables metrics output.
	Textfile string `mapstructure:"textfile" json:"textfile" yaml:"textfile"`
}

// Config groups all pipeline settings.
type Config struct {
	Event      EventConfig      `mapstructure:"event" json:"event" yaml:"event"`
	Paths      PathsConfig      `mapstructure:"paths" json:"paths" yaml:"paths"`
	Fields     FieldsConfig     `mapstructure:"fields" json:"fields" yaml:"fields"`
	Conversion ConversionConfig `mapstructure:"conversion" json:"conversion" yaml:"conversion"`
	Booklet    BookletConfig    `mapstructure:"booklet" json:"booklet" yaml:"booklet"`
	Ledger     LedgerConfig     `mapstructure:"ledger" json:"ledger" yaml:"ledger"`
	Publish    PublishConfig    `mapstructure:"publish" json:"publish" yaml:"publish"`
	Metrics    MetricsConfig    `mapstructure:"metrics" json:"metrics" yaml:"metrics"`
}

// DefaultConfig returns the settings of the OpenConf export layout the
// pipeline was built around.
func DefaultConfig() Config {
	return Config{
		Event: EventConfig{
			Name:         "SFT2021",
			Title:        "Congrès Français de Thermique 2021",
			Publisher:    "Société Française de Thermique",
			Year:         2021,
			Language:     "FR",
			ResourceType: "Acte de congrès",
			DOIPrefix:    "10.25855",
			BaseURL:      "https://www.sft.asso.fr/DOIeditions/CFT2021/",
			Labels: LabelsConfig{
				Title:          "Titre",
				Authors:        "Auteurs",
				Indexing:       "Indexations",
				Keywords:       "Mots clés",
				Abstract:       "Résumé",
				WorkInProgress: "Work In Progress",
				Paper:          "Papier",
				Theme:          "Theme numéro",
				Annexes:        "Annexes",
				AuthorIndex:    "Liste des auteurs",
				Volume:         "Tome",
				Download:       "download",
			},
		},
		Paths: PathsConfig{
			ImportDir:   "Imports_OpenConf",
			PDFSubdir:   "PDF_articles",
			Submissions: "openconf-submissions-all.csv",
			Themes:      "choix_theme.csv",
			Reviewers:   "Tableau_Reviewer.csv",
			TexDir:      "Export_Tex",
			HTMLDir:     "Export_HTML",
			XMLDir:      "Export_XML",
		},
		Fields: FieldsConfig{
			ID:                "SUBMISSION ID",
			Title:             "TITRE",
			Keywords:          "MOTS CLÉS",
			Abstract:          "RÉSUMÉ",
			ContactEmail:      "CONTACT AUTHOR EMAIL",
			ContactFamilyName: "CONTACT AUTHOR NOM",
			AuthorFamilyName:  "AUTHOR %d NOM",
			AuthorGivenName:   "AUTHOR %d PRÉNOM",
			AuthorAffiliation: "AUTHOR %d AFFILIATION",
			DOI:               "DOI",
		},
		Conversion: ConversionConfig{
			Backend:    BackendNative,
			Pandoc:     "pandoc",
			Latexmk:    "latexmk",
			Image:      "pandoc/latex:latest",
			Stylesheet: "markdown-pandoc.css",
		},
		Booklet: BookletConfig{
			Volumes:         2,
			SplitBy:         SplitByPapers,
			ReviewerColumns: 3,
			AbstractsJob:    "Resumes_SFT2021",
			ProceedingsJob:  "Actes_SFT2021",
		},
		Ledger: LedgerConfig{
			Driver: LedgerSQLite,
			Path:   filepath.Join("Export_XML", "ledger.db"),
		},
		Publish: PublishConfig{
			Driver: "s3",
			Region: "us-east-1",
		},
	}
}
