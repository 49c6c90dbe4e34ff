package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relpatch/internal/changelog"
	"github.com/ariel-frischer/relpatch/internal/errors"
	"github.com/ariel-frischer/relpatch/internal/git"
	"github.com/ariel-frischer/relpatch/internal/output"
	"github.com/ariel-frischer/relpatch/internal/release"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-assemble the description whenever inputs change",
	Long: `Watch the description template and the selected components' changelogs,
re-running assembly on every change.

Watch always writes to --output: patching in place consumes the placeholder
tokens, so repeated runs need the pristine template as input and a separate
file as output. Remote (http/https) changelogs are read on each run but not
watched. Press Ctrl+C to stop.`,
	Example: `  relpatch watch --all --output dist/release_description.md
  relpatch watch --sn-api -D template.md -o out.md`,
	GroupID:      GroupRelease,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Bool("all", false, "Watch every configured component")
	watchCmd.Flags().StringP("description", "D", "", "Template document (default from config)")
	watchCmd.Flags().StringP("output", "o", "", "Output document (required, distinct from the template)")
	watchCmd.Flags().Duration("debounce", 500*time.Millisecond, "Quiet period before re-running after a change")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, registry, err := getConfig()
	if err != nil {
		return err
	}

	selections, err := resolveSelections(cmd, registry, false)
	if err != nil {
		return err
	}

	assembler := assemblerFromFlags(cmd, cfg)
	if assembler.OutputPath == "" || assembler.OutputPath == assembler.DescriptionPath {
		return errors.WatchNeedsDistinctOutput()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	watched, err := watchInputs(watcher, assembler.DescriptionPath, selections)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	if git.IsRepository("") {
		if root, err := git.RepositoryRoot(""); err == nil {
			fmt.Fprintf(out, "Repository: %s\n", root)
		}
	}
	fmt.Fprintf(out, "Watching %d file(s); writing to %s. Press Ctrl+C to stop.\n",
		len(watched), assembler.OutputPath)

	runOnce := func() {
		result, err := assembler.Run(ctx, selections)
		if err != nil {
			output.PrintFailure(out, fmt.Sprintf("assembly failed: %v", mapDomainError(err)))
			return
		}
		output.PrintSuccess(out, fmt.Sprintf("%s updated (%d component(s))",
			result.OutputPath, len(result.Components)))
	}
	runOnce()

	debounce, _ := cmd.Flags().GetDuration("debounce")
	return watchLoop(ctx, watcher, watched, debounce, runOnce)
}

// watchInputs registers the parent directory of every local input with the
// watcher, so editor rename-replace saves are still observed. Returns the
// set of watched file paths.
func watchInputs(watcher *fsnotify.Watcher, descPath string, selections []release.Selection) (map[string]bool, error) {
	watched := make(map[string]bool)
	dirs := make(map[string]bool)

	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolving path %s: %w", path, err)
		}
		watched[abs] = true

		dir := filepath.Dir(abs)
		if dirs[dir] {
			return nil
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
		return nil
	}

	if err := add(descPath); err != nil {
		return nil, err
	}
	for _, sel := range selections {
		if changelog.IsRemote(sel.Component.Changelog) {
			continue
		}
		if err := add(sel.Component.Changelog); err != nil {
			return nil, err
		}
	}
	return watched, nil
}

// watchLoop dispatches file events to runOnce with debouncing, until the
// context is cancelled.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, watched map[string]bool, debounce time.Duration, runOnce func()) error {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				// Coalesce bursts of events into one run.
				if pending && !timer.Stop() {
					<-timer.C
				}
				timer.Reset(debounce)
				pending = true
			}

		case <-timer.C:
			pending = false
			runOnce()

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			fmt.Fprintf(os.Stderr, "Warning: watch error: %v\n", err)
		}
	}
}
