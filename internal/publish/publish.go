// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/proceedings-engine/internal/datacite"
	"github.com/pdiddy/proceedings-engine/internal/ledger"
	"github.com/pdiddy/proceedings-engine/internal/openconf"
	"github.com/pdiddy/proceedings-engine/pkg/types"
)

// Key prefixes mirroring the public URL layout.
const (
	AbstractsPrefix = "Abstracts/"
	PDFPrefix       = "PDF/"
	XMLPrefix       = "XML/"
)

// Ledger is the part of the ledger the publisher reads and updates.
type Ledger interface {
	List(ctx context.Context, opts ledger.ListOptions) ([]types.Publication, error)
	MarkPublished(ctx context.Context, id int, at time.Time) error
}

// Item is one file to upload.
type Item struct {
	Key  string
	Path string
}

// Publisher uploads the site and the files of ledger publications.
type Publisher struct {
	Store  Store
	Ledger Ledger
	Paths  types.PathsConfig
	Event  types.EventConfig
	Prefix string

	// All republishes every ledger row, not only the unpublished ones.
	All bool

	now func() time.Time
}

// NewPublisher returns a publisher configured from cfg.
func NewPublisher(store Store, l Ledger, cfg types.Config) *Publisher {
	return &Publisher{
		Store:  store,
		Ledger: l,
		Paths:  cfg.Paths,
		Event:  cfg.Event,
		Prefix: cfg.Publish.Prefix,
		now:    time.Now,
	}
}

// SiteItems lists the shared pages: every file of the HTML abstracts
// directory, the table of contents, and the DOI listing. Missing files are
// left out.
func (p *Publisher) SiteItems() ([]Item, error) {
	var items []Item
	dir := p.Paths.HTMLAbstractsDir()
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		items = append(items, Item{Key: AbstractsPrefix + e.Name(), Path: filepath.Join(dir, e.Name())})
	}

	extra := []Item{
		{Key: "Table_of_contents.html", Path: filepath.Join(p.Paths.HTMLDir, "Table_of_contents.html")},
		{Key: XMLPrefix + datacite.ListingName(p.Event.Name), Path: filepath.Join(p.Paths.XMLDir, datacite.ListingName(p.Event.Name))},
	}
	for _, it := range extra {
		if _, err := os.Stat(it.Path); err == nil {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Key < items[j].Key })
	return items, nil
}

// PaperItems lists the stamped PDF and the DataCite record of a publication.
func (p *Publisher) PaperItems(pub types.Publication) []Item {
	xmlPath := pub.XMLPath
	if xmlPath == "" {
		xmlPath = filepath.Join(p.Paths.XMLDir, datacite.FileName(pub.ID))
	}
	return []Item{
		{Key: fmt.Sprintf("%s%d_doi.pdf", PDFPrefix, pub.ID), Path: openconf.StampedPDFPath(p.Paths.PDFDir(), pub.ID)},
		{Key: XMLPrefix + datacite.FileName(pub.ID), Path: xmlPath},
	}
}

// Publish uploads the site pages, then the files of each pending publication.
// A publication is marked published only when all its files were uploaded.
// Status lines go to w.
func (p *Publisher) Publish(ctx context.Context, w io.Writer) (types.BatchResult, error) {
	var result types.BatchResult

	site, err := p.SiteItems()
	if err != nil {
		return result, err
	}
	for _, it := range site {
		result.Add(p.upload(ctx, it, w))
	}

	pubs, err := p.Ledger.List(ctx, ledger.ListOptions{Unpublished: !p.All})
	if err != nil {
		return result, fmt.Errorf("listing publications: %w", err)
	}
	for _, pub := range pubs {
		if ctx.Err() != nil {
			break
		}
		ok := true
		for _, it := range p.PaperItems(pub) {
			st := p.upload(ctx, it, w)
			result.Add(st)
			if st == types.ItemFailed {
				ok = false
			}
		}
		if !ok {
			continue
		}
		if err := p.Ledger.MarkPublished(ctx, pub.ID, p.now()); err != nil {
			fmt.Fprintf(w, "failed:  p%d (%v)\n", pub.ID, err)
			result.Add(types.ItemFailed)
		}
	}
	return result, ctx.Err()
}

func (p *Publisher) upload(ctx context.Context, it Item, w io.Writer) types.ItemStatus {
	key := p.key(it.Key)
	f, err := os.Open(it.Path)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", key, err)
		return types.ItemFailed
	}
	defer f.Close()

	if err := p.Store.Put(ctx, key, f, ContentType(key)); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", key, err)
		return types.ItemFailed
	}
	fmt.Fprintf(w, "uploaded: %s\n", key)
	return types.ItemDone
}

func (p *Publisher) key(k string) string {
	if p.Prefix == "" {
		return k
	}
	return path.Join(p.Prefix, k)
}
