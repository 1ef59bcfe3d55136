// Package sitemap renders the storefront sitemap.xml from category and
// product slugs. Only storefront-visible products are listed; the visibility
// filter lives in the repository query, not here.
package sitemap

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/lokumhouse/sweets-api/internal/domain/repository"
)

const namespaceSitemap = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Builder assembles the sitemap document on demand.
type Builder struct {
	baseURL      string
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewBuilder constructs the builder. baseURL is the storefront origin
// without a trailing slash, e.g. "https://shop.example.com".
func NewBuilder(baseURL string, categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *Builder {
	return &Builder{
		baseURL:      strings.TrimRight(baseURL, "/"),
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Build serializes the sitemap: the storefront root, one URL per category
// and one per visible product, with lastmod taken from each row.
func (b *Builder) Build() ([]byte, error) {
	categories, err := b.categoryRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("sitemap: list categories: %w", err)
	}
	products, err := b.productRepo.ListPublic()
	if err != nil {
		return nil, fmt.Errorf("sitemap: list products: %w", err)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", namespaceSitemap)

	b.addURL(urlset, "/", time.Time{}, "1.0")
	for _, c := range categories {
		if c.Slug == "" {
			continue
		}
		b.addURL(urlset, "/category/"+c.Slug, c.UpdatedAt, "0.8")
	}
	for _, p := range products {
		if p.Slug == "" {
			continue
		}
		b.addURL(urlset, "/product/"+p.Slug, p.UpdatedAt, "0.6")
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("sitemap: serialize: %w", err)
	}
	return out.Bytes(), nil
}

func (b *Builder) addURL(urlset *etree.Element, path string, lastMod time.Time, priority string) {
	u := urlset.CreateElement("url")
	u.CreateElement("loc").SetText(b.baseURL + path)
	if !lastMod.IsZero() {
		u.CreateElement("lastmod").SetText(lastMod.Format("2006-01-02"))
	}
	u.CreateElement("priority").SetText(priority)
}
