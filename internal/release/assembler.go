// Package release orchestrates description assembly: resolving component
// versions, extracting changelog entries, and patching the release
// description document in a single read-patch-write cycle.
package release

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ariel-frischer/relpatch/internal/changelog"
	"github.com/ariel-frischer/relpatch/internal/component"
	"github.com/ariel-frischer/relpatch/internal/description"
	"github.com/ariel-frischer/relpatch/internal/git"
	"github.com/ariel-frischer/relpatch/internal/manifest"
)

// Selection names one component to include in a run, with an optional
// explicit version. An empty Version means the version is discovered from
// the component's manifest.
type Selection struct {
	Component component.Component
	Version   string
}

// String renders the selection as name@version for summaries and history.
func (s Selection) String() string {
	if s.Version == "" {
		return s.Component.Name
	}
	return s.Component.Name + "@" + s.Version
}

// ComponentError wraps a failure with the component it belongs to, so the
// command layer can report which part of the release broke.
type ComponentError struct {
	Name string
	Err  error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *ComponentError) Unwrap() error { return e.Err }

// ComponentResult reports what one component's substitution did.
type ComponentResult struct {
	Name    string
	Version string
	// EntryLen is the length of the extracted entry text before any
	// fallback substitution.
	EntryLen int
	// UsedFallback is true when the entry was blank and the fallback
	// literal was inserted instead.
	UsedFallback bool
	// Replacements counts replaced changelog token occurrences.
	Replacements int
	// VersionReplacements counts replaced version token occurrences.
	VersionReplacements int
}

// Result reports a whole assembly run.
type Result struct {
	// Document is the patched release description text.
	Document string
	// OutputPath is where the document was (or would be) written.
	OutputPath string
	// Commit is the short HEAD hash, when commit substitution ran.
	Commit string
	// Branch is the checked-out branch name, when commit substitution ran.
	// Empty in detached HEAD state.
	Branch string
	// Components holds per-component outcomes in selection order.
	Components []ComponentResult
	// Duration is the wall-clock run time.
	Duration time.Duration
}

// subOwner maps a substitution back to the component result it reports to.
type subOwner struct {
	component int
	version   bool
}

// Assembler performs description assembly runs over a component registry.
type Assembler struct {
	// DescriptionPath is the template document to patch.
	DescriptionPath string
	// OutputPath overrides the write destination. Empty means in place.
	OutputPath string
	// Fallback replaces blank entries. Empty means description.FallbackText.
	Fallback string
	// RemoteTimeout bounds fetches of http(s) changelog locations.
	RemoteTimeout time.Duration
	// ResolveCommit enables __RELEASE_COMMIT__ substitution from the
	// repository containing CommitPath ("" = working directory).
	ResolveCommit bool
	CommitPath    string
	// DryRun skips the final write.
	DryRun bool
}

// Run assembles the release description for the given selections: resolve
// each version, extract each entry, then read the target document once,
// apply every substitution, and write the result once.
func (a *Assembler) Run(ctx context.Context, selections []Selection) (*Result, error) {
	start := time.Now()

	if len(selections) == 0 {
		return nil, fmt.Errorf("no components selected")
	}

	doc, err := description.Load(a.DescriptionPath)
	if err != nil {
		return nil, err
	}

	result := &Result{OutputPath: a.outputPath()}
	var subs []description.Substitution
	var owners []subOwner

	for ci, sel := range selections {
		entry, version, err := a.resolveEntry(ctx, sel)
		if err != nil {
			return nil, &ComponentError{Name: sel.Component.Name, Err: err}
		}

		subs = append(subs, description.Substitution{
			Token: sel.Component.Token,
			Entry: entry,
		})
		owners = append(owners, subOwner{component: ci})
		result.Components = append(result.Components, ComponentResult{
			Name:         sel.Component.Name,
			Version:      version,
			EntryLen:     len(entry),
			UsedFallback: strings.TrimSpace(entry) == "",
		})

		// Version tokens are optional; substitute only when present.
		if description.HasToken(doc, sel.Component.VersionToken) {
			subs = append(subs, description.Substitution{
				Token: sel.Component.VersionToken,
				Entry: version,
			})
			owners = append(owners, subOwner{component: ci, version: true})
		}
	}

	patched, applied := description.Apply(doc, subs, a.Fallback)

	for i, app := range applied {
		o := owners[i]
		if o.version {
			result.Components[o.component].VersionReplacements = app.Replacements
		} else {
			result.Components[o.component].Replacements = app.Replacements
		}
	}

	if a.ResolveCommit {
		commit, err := git.ShortHead(a.CommitPath)
		if err != nil {
			return nil, fmt.Errorf("resolving release commit: %w", err)
		}
		result.Commit = commit
		if branch, err := git.CurrentBranch(a.CommitPath); err == nil {
			result.Branch = branch
		}
		patched, _ = description.PatchWith(patched, description.CommitToken, commit, commit)
	}

	result.Document = patched

	if !a.DryRun {
		if err := description.Save(result.OutputPath, patched); err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// resolveEntry resolves a selection's version and extracts its changelog
// entry text.
func (a *Assembler) resolveEntry(ctx context.Context, sel Selection) (entry, version string, err error) {
	version = sel.Version
	if version == "" {
		version, err = manifest.Version(sel.Component.Manifest)
		if err != nil {
			return "", "", err
		}
	}

	if changelog.IsRemote(sel.Component.Changelog) && a.RemoteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.RemoteTimeout)
		defer cancel()
	}

	doc, err := changelog.Resolve(ctx, sel.Component.Changelog)
	if err != nil {
		return "", "", err
	}

	entry, err = doc.Entry(version)
	if err != nil {
		return "", "", err
	}
	return entry, version, nil
}

// outputPath returns the effective write destination.
func (a *Assembler) outputPath() string {
	if a.OutputPath != "" {
		return a.OutputPath
	}
	return a.DescriptionPath
}
