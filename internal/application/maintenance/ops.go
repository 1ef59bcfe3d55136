// Package maintenance replaces the historical pile of one-off scripts with a
// small set of idempotent, parameterized operations behind a single CLI
// surface. Every operation takes its configuration explicitly, supports
// dry-run (no writes, counts only) and throttles row-by-row writes.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
	"github.com/lokumhouse/sweets-api/internal/domain/slug"
	"github.com/lokumhouse/sweets-api/pkg/config"
	"github.com/lokumhouse/sweets-api/pkg/logger"
	"github.com/google/uuid"
)

// Ops bundles the maintenance operations with their dependencies.
type Ops struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	firmaRepo    repository.FirmaRepository
	limiter      *rate.Limiter
	log          *logger.Logger
}

// NewOps builds the operation set. The write limiter comes from configuration
// so bulk jobs cannot saturate the shared store.
func NewOps(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, firmaRepo repository.FirmaRepository, cfg config.MaintenanceConfig, log *logger.Logger) *Ops {
	wps := cfg.WritesPerSecond
	if wps <= 0 {
		wps = 50
	}
	return &Ops{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		firmaRepo:    firmaRepo,
		limiter:      rate.NewLimiter(rate.Every(time.Second/time.Duration(wps)), wps),
		log:          log,
	}
}

// BackfillMissingSlugs assigns slugs to every category lacking one, in
// arbitrary order, skipping rows that already carry a non-blank slug. The
// used-set is updated in memory after each assignment so two categories with
// the same source name in one run cannot collide.
func (o *Ops) BackfillMissingSlugs(dryRun bool) (*Outcome, error) {
	out := &Outcome{Op: "backfill-slugs", DryRun: dryRun, State: Fully}

	missing, err := o.categoryRepo.ListMissingSlug()
	if err != nil {
		return nil, err
	}
	used, err := o.categoryRepo.ListUsedSlugs()
	if err != nil {
		return nil, err
	}
	assigner := slug.NewAssigner(used)

	branch := BranchResult{Name: "assign"}
	for _, category := range missing {
		base, err := slug.FromLocalized(category.NameEN, category.NameDE, category.NameTR)
		if errors.Is(err, domain.ErrMissingName) {
			out.Details = append(out.Details, fmt.Sprintf("category %s skipped: no localized name", category.ID))
			continue
		}
		if err != nil {
			return nil, err
		}
		assigned := assigner.Assign(base)
		if dryRun {
			out.Details = append(out.Details, fmt.Sprintf("category %s -> %q", category.ID, assigned))
			branch.Matched++
			continue
		}
		if err := o.limiter.Wait(context.Background()); err != nil {
			return nil, err
		}
		if err := o.categoryRepo.UpdateSlug(category.ID, assigned); err != nil {
			branch.Err = err
			out.State = Partially
			break
		}
		o.log.Info().Str("category_id", category.ID).Str("slug", assigned).Msg("slug backfilled")
		branch.Matched++
	}
	out.Branches = append(out.Branches, branch)
	return out, branch.Err
}

// DeactivateProductsMissingImage enforces the visibility invariant in bulk:
// every active product whose main image is NULL or empty is deactivated. The
// two predicates run as separate sequential updates; each branch reports
// independently, so one failing leaves a partial application. Idempotent:
// the second run matches nothing. Never reactivates.
func (o *Ops) DeactivateProductsMissingImage(dryRun bool) (*Outcome, error) {
	out := &Outcome{Op: "deactivate-missing-image", DryRun: dryRun}

	if dryRun {
		nullCount, emptyCount, err := o.productRepo.CountMissingImage()
		if err != nil {
			return nil, err
		}
		out.State = None // dry-run writes nothing
		out.Branches = []BranchResult{
			{Name: "image_null", Matched: int64(nullCount)},
			{Name: "image_empty", Matched: int64(emptyCount)},
		}
		return out, nil
	}

	nullBranch := BranchResult{Name: "image_null"}
	nullBranch.Matched, nullBranch.Err = o.productRepo.DeactivateMissingImageNull()

	emptyBranch := BranchResult{Name: "image_empty"}
	if nullBranch.Err == nil {
		emptyBranch.Matched, emptyBranch.Err = o.productRepo.DeactivateMissingImageEmpty()
	}

	out.Branches = []BranchResult{nullBranch, emptyBranch}
	switch {
	case nullBranch.Err == nil && emptyBranch.Err == nil:
		out.State = Fully
	case nullBranch.Err != nil:
		out.State = None
		return out, nullBranch.Err
	default:
		out.State = Partially
		return out, emptyBranch.Err
	}
	return out, nil
}

// EnsureCategory creates a category if no category with the derived slug
// exists yet. Idempotent: re-running with the same names is a no-op.
func (o *Ops) EnsureCategory(nameEN, nameDE, nameTR, parentSlug string, dryRun bool) (*Outcome, error) {
	out := &Outcome{Op: "ensure-category", DryRun: dryRun, State: Fully}

	base, err := slug.FromLocalized(nameEN, nameDE, nameTR)
	if err != nil {
		return nil, err
	}
	existing, err := o.categoryRepo.GetBySlug(base)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		out.Details = append(out.Details, fmt.Sprintf("category %q already present", base))
		out.Branches = append(out.Branches, BranchResult{Name: "create"})
		return out, nil
	}

	parentID := ""
	if parentSlug != "" {
		parent, err := o.categoryRepo.GetBySlug(parentSlug)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		if !parent.IsRoot() {
			return nil, domain.ErrInvalidInput
		}
		parentID = parent.ID
	}

	if dryRun {
		out.Details = append(out.Details, fmt.Sprintf("would create category %q", base))
		out.Branches = append(out.Branches, BranchResult{Name: "create", Matched: 1})
		return out, nil
	}

	used, err := o.categoryRepo.ListUsedSlugs()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Slug:      slug.NewAssigner(used).Assign(base),
		NameEN:    nameEN,
		NameDE:    nameDE,
		NameTR:    nameTR,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := o.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	o.log.Info().Str("slug", category.Slug).Msg("category ensured")
	out.Branches = append(out.Branches, BranchResult{Name: "create", Matched: 1})
	return out, nil
}

// ReassignProductsBetweenCategories moves every product of one category to
// another, then optionally deletes the source once empty. Referential
// integrity is preserved: the source is only deleted when nothing references
// it anymore; a non-empty source after the move is logged as a warning.
func (o *Ops) ReassignProductsBetweenCategories(fromSlug, toSlug string, deleteEmpty, dryRun bool) (*Outcome, error) {
	out := &Outcome{Op: "reassign-category", DryRun: dryRun, State: Fully}

	from, err := o.categoryRepo.GetBySlug(fromSlug)
	if err != nil {
		return nil, err
	}
	to, err := o.categoryRepo.GetBySlug(toSlug)
	if err != nil {
		return nil, err
	}
	if from == nil || to == nil {
		return nil, domain.ErrNotFound
	}

	if dryRun {
		count, err := o.categoryRepo.CountProducts(from.ID)
		if err != nil {
			return nil, err
		}
		out.State = None
		out.Branches = append(out.Branches, BranchResult{Name: "reassign", Matched: int64(count)})
		if deleteEmpty {
			out.Details = append(out.Details, fmt.Sprintf("would delete category %q once empty", fromSlug))
		}
		return out, nil
	}

	moveBranch := BranchResult{Name: "reassign"}
	moveBranch.Matched, moveBranch.Err = o.productRepo.ReassignCategory(from.ID, to.ID)
	out.Branches = append(out.Branches, moveBranch)
	if moveBranch.Err != nil {
		out.State = None
		return out, moveBranch.Err
	}

	if deleteEmpty {
		deleteBranch := BranchResult{Name: "delete_source"}
		remaining, err := o.categoryRepo.CountProducts(from.ID)
		if err != nil {
			deleteBranch.Err = err
			out.State = Partially
			out.Branches = append(out.Branches, deleteBranch)
			return out, err
		}
		if remaining > 0 {
			// Orphaning is a data-integrity warning, not a hard constraint.
			o.log.Warn().Str("category", fromSlug).Int("remaining", remaining).Msg("source category still referenced, not deleted")
			out.Details = append(out.Details, fmt.Sprintf("category %q still has %d product(s)", fromSlug, remaining))
			out.State = Partially
			out.Branches = append(out.Branches, deleteBranch)
			return out, nil
		}
		if err := o.categoryRepo.Delete(from.ID); err != nil {
			deleteBranch.Err = err
			out.State = Partially
			out.Branches = append(out.Branches, deleteBranch)
			return out, err
		}
		deleteBranch.Matched = 1
		out.Branches = append(out.Branches, deleteBranch)
	}
	return out, nil
}

// MigratePriorityTiers moves the store's allowed tier set to the given
// version (1-based index into entity.TierVersions). Rows carrying a value
// outside the target set block the migration and are listed in the outcome.
func (o *Ops) MigratePriorityTiers(toVersion int, dryRun bool) (*Outcome, error) {
	if toVersion < 1 || toVersion > len(entity.TierVersions) {
		return nil, domain.ErrInvalidInput
	}
	allowed := entity.TierVersions[toVersion-1]
	out := &Outcome{Op: "migrate-tiers", DryRun: dryRun, State: Fully}

	invalid, err := o.firmaRepo.ListInvalidTiers(allowed)
	if err != nil {
		return nil, err
	}
	if len(invalid) > 0 {
		out.State = None
		for _, f := range invalid {
			out.Details = append(out.Details, fmt.Sprintf("firma %s has tier %q outside %v", f.ID, f.PriorityTier, allowed))
		}
		return out, domain.ErrInvalidTier
	}

	if dryRun {
		out.State = None
		out.Details = append(out.Details, fmt.Sprintf("would set allowed tiers to %v", allowed))
		return out, nil
	}
	if err := o.firmaRepo.MigrateTierConstraint(allowed); err != nil {
		out.State = None
		return out, err
	}
	out.Branches = append(out.Branches, BranchResult{Name: "constraint", Matched: 1})
	o.log.Info().Strs("allowed", allowed).Msg("priority tier constraint migrated")
	return out, nil
}
