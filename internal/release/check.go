package release

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ariel-frischer/relpatch/internal/changelog"
	"github.com/ariel-frischer/relpatch/internal/description"
	"github.com/ariel-frischer/relpatch/internal/manifest"
)

// defaultCheckParallel bounds concurrent component checks. Checks are
// read-only, so running them in parallel never violates the single-writer
// rule on the description document.
const defaultCheckParallel = 4

// CheckResult reports the verification outcome for one component.
type CheckResult struct {
	Name    string
	Version string
	// TokenPresent is true when the component's changelog token occurs in
	// the target document at least once.
	TokenPresent bool
	// Err is the first failure encountered for this component, nil when
	// every check passed.
	Err error
}

// OK reports whether the component passed all checks.
func (r CheckResult) OK() bool {
	return r.Err == nil && r.TokenPresent
}

// Check verifies every selection without writing anything: the manifest
// resolves to a version (unless one was given), the changelog is readable
// and has a heading for that version, and the target document carries the
// component's token. Component checks run concurrently under a bounded
// errgroup; results come back in selection order.
func (a *Assembler) Check(ctx context.Context, selections []Selection) ([]CheckResult, error) {
	doc, err := description.Load(a.DescriptionPath)
	if err != nil {
		return nil, err
	}

	results := make([]CheckResult, len(selections))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultCheckParallel)

	for i, sel := range selections {
		g.Go(func() error {
			results[i] = a.checkOne(ctx, sel, doc)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// checkOne verifies a single component against the loaded document.
func (a *Assembler) checkOne(ctx context.Context, sel Selection, doc string) CheckResult {
	result := CheckResult{
		Name:         sel.Component.Name,
		Version:      sel.Version,
		TokenPresent: description.HasToken(doc, sel.Component.Token),
	}

	if result.Version == "" {
		version, err := manifest.Version(sel.Component.Manifest)
		if err != nil {
			result.Err = err
			return result
		}
		result.Version = version
	}

	log, err := changelog.Resolve(ctx, sel.Component.Changelog)
	if err != nil {
		result.Err = err
		return result
	}

	if _, err := log.Entry(result.Version); err != nil {
		result.Err = err
		return result
	}

	if !result.TokenPresent {
		result.Err = fmt.Errorf("token %s not present in %s", sel.Component.Token, a.DescriptionPath)
	}
	return result
}
