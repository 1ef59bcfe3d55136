package maintenance_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokumhouse/sweets-api/internal/application/maintenance"
	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/pkg/config"
	"github.com/lokumhouse/sweets-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
	counter    func(categoryID string) int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*entity.Category)}
}

func (f *fakeCategoryRepo) add(c *entity.Category) { f.categories[c.ID] = c }

func (f *fakeCategoryRepo) Create(c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) GetBySlug(s string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.Slug == s {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) ListRoots() ([]*entity.Category, error)       { return nil, nil }
func (f *fakeCategoryRepo) ListChildren(string) ([]*entity.Category, error) { return nil, nil }

func (f *fakeCategoryRepo) ListAll() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) ListUsedSlugs() ([]string, error) {
	var out []string
	for _, c := range f.categories {
		if c.Slug != "" {
			out = append(out, c.Slug)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) ListMissingSlug() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		if c.Slug == "" {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) UpdateSlug(id, s string) error {
	c, ok := f.categories[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Slug = s
	return nil
}

func (f *fakeCategoryRepo) Update(c *entity.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) Delete(id string) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) CountProducts(categoryID string) (int, error) {
	if f.counter == nil {
		return 0, nil
	}
	return f.counter(categoryID), nil
}

func (f *fakeCategoryRepo) setProductCounter(fn func(string) int) { f.counter = fn }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) add(p *entity.Product) { f.products[p.ID] = p }

func (f *fakeProductRepo) Create(p *entity.Product) error          { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) { return f.products[id], nil }

func (f *fakeProductRepo) GetBySlug(s string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Slug == s {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }

func (f *fakeProductRepo) SetActive(id string, active bool) error {
	if p, ok := f.products[id]; ok {
		p.Active = active
	}
	return nil
}

func (f *fakeProductRepo) Delete(id string) error { delete(f.products, id); return nil }

func (f *fakeProductRepo) List(int, int) ([]*entity.Product, error)               { return nil, nil }
func (f *fakeProductRepo) ListPublicByCategory(string) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) ListPublic() ([]*entity.Product, error)                 { return nil, nil }
func (f *fakeProductRepo) ListByCategory(string) ([]*entity.Product, error)       { return nil, nil }
func (f *fakeProductRepo) ListUsedSlugs() ([]string, error)                       { return nil, nil }

func (f *fakeProductRepo) CountMissingImage() (nullCount, emptyCount int, err error) {
	for _, p := range f.products {
		if !p.Active {
			continue
		}
		if p.MainImageURL == "" {
			emptyCount++ // the fake has no NULL notion, everything lands in the empty branch
		}
	}
	return 0, emptyCount, nil
}

func (f *fakeProductRepo) DeactivateMissingImageNull() (int64, error) { return 0, nil }

func (f *fakeProductRepo) DeactivateMissingImageEmpty() (int64, error) {
	var n int64
	for _, p := range f.products {
		if p.Active && p.MainImageURL == "" {
			p.Active = false
			n++
		}
	}
	return n, nil
}

func (f *fakeProductRepo) ReassignCategory(fromID, toID string) (int64, error) {
	var n int64
	for _, p := range f.products {
		if p.CategoryID == fromID {
			p.CategoryID = toID
			n++
		}
	}
	return n, nil
}

func (f *fakeProductRepo) countInCategory(categoryID string) int {
	n := 0
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n
}

type fakeFirmaRepo struct {
	firmas         map[string]*entity.Firma
	constraint     []string
	constraintSets int
}

func newFakeFirmaRepo() *fakeFirmaRepo {
	return &fakeFirmaRepo{firmas: make(map[string]*entity.Firma)}
}

func (f *fakeFirmaRepo) add(fi *entity.Firma) { f.firmas[fi.ID] = fi }

func (f *fakeFirmaRepo) Create(fi *entity.Firma) error            { f.firmas[fi.ID] = fi; return nil }
func (f *fakeFirmaRepo) GetByID(id string) (*entity.Firma, error) { return f.firmas[id], nil }
func (f *fakeFirmaRepo) Update(fi *entity.Firma) error            { f.firmas[fi.ID] = fi; return nil }
func (f *fakeFirmaRepo) Delete(id string) error                   { delete(f.firmas, id); return nil }
func (f *fakeFirmaRepo) List(int, int) ([]*entity.Firma, error)   { return nil, nil }

func (f *fakeFirmaRepo) ListInvalidTiers(allowed []string) ([]*entity.Firma, error) {
	ok := make(map[string]bool, len(allowed))
	for _, t := range allowed {
		ok[t] = true
	}
	var out []*entity.Firma
	for _, fi := range f.firmas {
		if fi.PriorityTier != "" && !ok[fi.PriorityTier] {
			out = append(out, fi)
		}
	}
	return out, nil
}

func (f *fakeFirmaRepo) MigrateTierConstraint(allowed []string) error {
	f.constraint = allowed
	f.constraintSets++
	return nil
}

func testOps(c *fakeCategoryRepo, p *fakeProductRepo, fi *fakeFirmaRepo) *maintenance.Ops {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return maintenance.NewOps(c, p, fi, config.MaintenanceConfig{WritesPerSecond: 1000}, log)
}

// ──────────────────────────────────────────────────────────────────────────────
// BackfillMissingSlugs
// ──────────────────────────────────────────────────────────────────────────────

func TestBackfillMissingSlugs_AssignsOnlyMissing(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)
	c.add(&entity.Category{ID: "c1", Slug: "lokum", NameEN: "Lokum"})
	c.add(&entity.Category{ID: "c2", NameEN: "Cold Drinks"})
	c.add(&entity.Category{ID: "c3", NameTR: "Şekerleme"})

	out, err := testOps(c, p, newFakeFirmaRepo()).BackfillMissingSlugs(false)
	require.NoError(t, err)
	assert.Equal(t, maintenance.Fully, out.State)
	assert.EqualValues(t, 2, out.Changed())

	assert.Equal(t, "lokum", c.categories["c1"].Slug, "existing slugs are untouched")
	assert.Equal(t, "cold-drinks", c.categories["c2"].Slug)
	assert.Equal(t, "sekerleme", c.categories["c3"].Slug)
}

// Two nameless-but-identical rows in one batch must get distinct slugs.
func TestBackfillMissingSlugs_BatchDoesNotSelfCollide(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)
	c.add(&entity.Category{ID: "c1", NameEN: "Gift Box"})
	c.add(&entity.Category{ID: "c2", NameEN: "Gift Box"})

	_, err := testOps(c, p, newFakeFirmaRepo()).BackfillMissingSlugs(false)
	require.NoError(t, err)
	assert.NotEqual(t, c.categories["c1"].Slug, c.categories["c2"].Slug,
		"same-name rows in one batch must not collide")
}

func TestBackfillMissingSlugs_SkipsNamelessRows(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)
	c.add(&entity.Category{ID: "c1"}) // no name in any locale

	out, err := testOps(c, p, newFakeFirmaRepo()).BackfillMissingSlugs(false)
	require.NoError(t, err)
	assert.Zero(t, out.Changed())
	assert.Empty(t, c.categories["c1"].Slug, "a nameless row stays as it was")
	assert.NotEmpty(t, out.Details, "the skip is reported")
}

func TestBackfillMissingSlugs_DryRunWritesNothing(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)
	c.add(&entity.Category{ID: "c1", NameEN: "Cold Drinks"})

	out, err := testOps(c, p, newFakeFirmaRepo()).BackfillMissingSlugs(true)
	require.NoError(t, err)
	assert.True(t, out.DryRun)
	assert.EqualValues(t, 1, out.Changed(), "dry-run reports the would-be count")
	assert.Empty(t, c.categories["c1"].Slug, "dry-run must not write")
}

// ──────────────────────────────────────────────────────────────────────────────
// DeactivateProductsMissingImage
// ──────────────────────────────────────────────────────────────────────────────

func TestDeactivateMissingImage_SelectiveAndIdempotent(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)
	p.add(&entity.Product{ID: "p1", Active: true, MainImageURL: "https://cdn/x.jpg"})
	p.add(&entity.Product{ID: "p2", Active: true})                  // missing image
	p.add(&entity.Product{ID: "p3", Active: false})                 // already inactive
	ops := testOps(c, p, newFakeFirmaRepo())

	out, err := ops.DeactivateProductsMissingImage(false)
	require.NoError(t, err)
	assert.Equal(t, maintenance.Fully, out.State)
	assert.EqualValues(t, 1, out.Changed(), "only the active product without an image matches")

	assert.True(t, p.products["p1"].Active, "products with an image are untouched")
	assert.False(t, p.products["p2"].Active)
	assert.False(t, p.products["p3"].Active, "never reactivates")

	// Second run matches nothing.
	out, err = ops.DeactivateProductsMissingImage(false)
	require.NoError(t, err)
	assert.Zero(t, out.Changed(), "the sweep is idempotent")
}

func TestDeactivateMissingImage_DryRunCountsOnly(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)
	p.add(&entity.Product{ID: "p1", Active: true})

	out, err := testOps(c, p, newFakeFirmaRepo()).DeactivateProductsMissingImage(true)
	require.NoError(t, err)
	assert.Equal(t, maintenance.None, out.State, "dry-run applies nothing")
	assert.EqualValues(t, 1, out.Changed())
	assert.True(t, p.products["p1"].Active, "dry-run must not write")
}

// ──────────────────────────────────────────────────────────────────────────────
// EnsureCategory
// ──────────────────────────────────────────────────────────────────────────────

func TestEnsureCategory_Idempotent(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)
	ops := testOps(c, p, newFakeFirmaRepo())

	out, err := ops.EnsureCategory("Gift Boxes", "", "", "", false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, out.Changed())

	out, err = ops.EnsureCategory("Gift Boxes", "", "", "", false)
	require.NoError(t, err)
	assert.Zero(t, out.Changed(), "second run finds the slug and creates nothing")
	assert.Len(t, c.categories, 1)
}

func TestEnsureCategory_UnknownParentRejected(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)

	_, err := testOps(c, p, newFakeFirmaRepo()).EnsureCategory("Lokum", "", "", "nope", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReassignProductsBetweenCategories
// ──────────────────────────────────────────────────────────────────────────────

func TestReassignCategory_MovesAndDeletesEmptySource(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)
	c.add(&entity.Category{ID: "c-old", Slug: "old"})
	c.add(&entity.Category{ID: "c-new", Slug: "new"})
	p.add(&entity.Product{ID: "p1", CategoryID: "c-old"})
	p.add(&entity.Product{ID: "p2", CategoryID: "c-old"})

	out, err := testOps(c, p, newFakeFirmaRepo()).ReassignProductsBetweenCategories("old", "new", true, false)
	require.NoError(t, err)
	assert.Equal(t, maintenance.Fully, out.State)

	assert.Equal(t, "c-new", p.products["p1"].CategoryID)
	assert.Equal(t, "c-new", p.products["p2"].CategoryID)
	assert.Nil(t, c.categories["c-old"], "emptied source is deleted when requested")
}

func TestReassignCategory_KeepsSourceWhenNotAsked(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)
	c.add(&entity.Category{ID: "c-old", Slug: "old"})
	c.add(&entity.Category{ID: "c-new", Slug: "new"})
	p.add(&entity.Product{ID: "p1", CategoryID: "c-old"})

	_, err := testOps(c, p, newFakeFirmaRepo()).ReassignProductsBetweenCategories("old", "new", false, false)
	require.NoError(t, err)
	assert.NotNil(t, c.categories["c-old"])
}

func TestReassignCategory_UnknownSlugRejected(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)

	_, err := testOps(c, p, newFakeFirmaRepo()).ReassignProductsBetweenCategories("ghost", "also-ghost", false, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// MigratePriorityTiers
// ──────────────────────────────────────────────────────────────────────────────

func TestMigrateTiers_AppliesConstraint(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)
	fi := newFakeFirmaRepo()
	fi.add(&entity.Firma{ID: "f1", Name: "Sweets GmbH", PriorityTier: "A", DiscountPercent: decimal.Zero})

	target := len(entity.TierVersions)
	out, err := testOps(c, p, fi).MigratePriorityTiers(target, false)
	require.NoError(t, err)
	assert.Equal(t, maintenance.Fully, out.State)
	assert.Equal(t, entity.TierVersions[target-1], fi.constraint)
}

// Rows outside the target set block the migration entirely and are listed.
func TestMigrateTiers_InvalidRowsBlock(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)
	fi := newFakeFirmaRepo()
	fi.add(&entity.Firma{ID: "f1", PriorityTier: "Z"})

	out, err := testOps(c, p, fi).MigratePriorityTiers(1, false)
	assert.ErrorIs(t, err, domain.ErrInvalidTier)
	assert.Equal(t, maintenance.None, out.State)
	assert.NotEmpty(t, out.Details, "the offending rows are listed")
	assert.Zero(t, fi.constraintSets, "no DDL runs while invalid rows exist")
}

func TestMigrateTiers_UnknownVersionRejected(t *testing.T) {
	c := newFakeCategoryRepo()
	p := newFakeProductRepo()
	c.setProductCounter(p.countInCategory)

	_, err := testOps(c, p, newFakeFirmaRepo()).MigratePriorityTiers(99, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
