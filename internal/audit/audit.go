// Package audit checks a configuration against the repository on disk.
package audit

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/lc/folio/internal/filesys"
	"github.com/lc/folio/internal/view"
)

// ErrNotDir is reported for a topic path that exists but is not a directory.
var ErrNotDir = errors.New("not a directory")

// maxConcurrentStats bounds the stat calls in flight; network filesystems
// are the slow case this is for.
const maxConcurrentStats = 8

// TopicResult is the outcome for one topic.
type TopicResult struct {
	Topic string
	Dir   string
	// Err is nil when Dir exists and is a directory.
	Err error
}

// Topics stats every topic's absolute directory concurrently. It returns
// one result per topic in key order, and an error combining every failed
// topic (use multierr.Errors to split it) or ctx's error.
func Topics(ctx context.Context, content *view.Content, fs filesys.StatFS) ([]TopicResult, error) {
	keys := content.TopicKeys()
	results := make([]TopicResult, len(keys))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(maxConcurrentStats)

	for i, key := range keys {
		dir, _ := content.TopicAbsolutePath(key)
		results[i] = TopicResult{Topic: key, Dir: dir}

		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// each goroutine owns results[i]
			results[i].Err = checkDir(fs, dir)
			return nil
		})
	}

	var errs error
	if err := grp.Wait(); err != nil {
		errs = multierr.Append(errs, err)
	}
	for _, r := range results {
		if r.Err != nil {
			errs = multierr.Append(errs, fmt.Errorf("topic %q: %w", r.Topic, r.Err))
		}
	}
	return results, errs
}

func checkDir(fs filesys.StatFS, dir string) error {
	info, err := fs.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotDir)
	}
	return nil
}
