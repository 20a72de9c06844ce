package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/leonardomso/srclist/internal/layout"
	"github.com/leonardomso/srclist/internal/watch"
)

// watchSources lists once, then lists again after every change under the
// source root until ctx is cancelled.
func watchSources(ctx context.Context, lay layout.Layout, opts listOptions, stdout, stderr io.Writer) error {
	scanOpts, format, err := resolveList(lay, opts)
	if err != nil {
		return err
	}

	if err := emitList(scanOpts, format, opts, stdout, stderr); err != nil {
		return err
	}

	w, err := watch.New(scanOpts.Root, scanOpts.SkipHidden)
	if err != nil {
		return fmt.Errorf("watching %s: %w", scanOpts.Root, err)
	}
	defer w.Close()

	fmt.Fprintf(stderr, "Watching %s (Ctrl+C to stop)\n", w.Root())

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-w.Errors():
			return fmt.Errorf("watching %s: %w", scanOpts.Root, err)
		case <-w.Changes():
			fmt.Fprintln(stderr, "Change detected, listing again")
			if err := emitList(scanOpts, format, opts, stdout, stderr); err != nil {
				return err
			}
		}
	}
}
