package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover finds Solidity files matching opts under the working directory.
// The result is deduplicated and sorted so runs are deterministic.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	c := &collector{
		ctx:        ctx,
		opts:       opts,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		abs := inputPath
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}
		if info.IsDir() {
			if err := c.walkTree(abs); err != nil {
				return nil, err
			}
			continue
		}
		if c.wants(abs) {
			c.add(abs)
		}
	}

	sort.Strings(c.files)
	return c.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// collector accumulates matching source files across the input paths.
type collector struct {
	ctx        context.Context
	opts       Options
	workDir    string
	extensions []string
	seen       map[string]struct{}
	files      []string
}

func (c *collector) add(path string) {
	if _, dup := c.seen[path]; dup {
		return
	}
	c.seen[path] = struct{}{}
	c.files = append(c.files, path)
}

// walkTree walks root, collecting files that pass the extension and glob
// filters. Hidden entries and unreadable subtrees are skipped.
func (c *collector) walkTree(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-c.ctx.Done():
			return c.ctx.Err()
		default:
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && strings.HasPrefix(entry.Name(), ".") {
				return filepath.SkipDir
			}
			if anyGlob(c.opts.ExcludeGlobs, c.rel(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return c.walkSymlink(path)
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}
		if c.wants(path) {
			c.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// walkSymlink resolves a symlink entry. File links are treated as regular
// candidates; directory links are descended only with FollowSymlinks, and
// the walk recurses into the resolved target so WalkDir's Lstat on the root
// cannot loop.
func (c *collector) walkSymlink(path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		// Broken link.
		return nil //nolint:nilerr
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr
	}

	if info.IsDir() {
		if !c.opts.FollowSymlinks {
			return nil
		}
		return c.walkTree(target)
	}

	if strings.HasPrefix(filepath.Base(path), ".") {
		return nil
	}
	if c.wants(path) {
		c.add(path)
	}
	return nil
}

func (c *collector) rel(path string) string {
	rel, err := filepath.Rel(c.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// wants reports whether a file passes the extension filter and the
// include/exclude globs.
func (c *collector) wants(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	matched := false
	for _, e := range c.extensions {
		if strings.ToLower(e) == ext {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	rel := c.rel(path)
	if anyGlob(c.opts.ExcludeGlobs, rel) {
		return false
	}
	if len(c.opts.IncludeGlobs) > 0 && !anyGlob(c.opts.IncludeGlobs, rel) {
		return false
	}
	return true
}

func anyGlob(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if matchGlob(rel, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches a path against a glob pattern such as "*.sol",
// "lib/**", or "node_modules/**". Patterns without ** also match against
// the bare filename.
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStar(path, pattern)
	}

	if ok, err := filepath.Match(pattern, path); err == nil && ok {
		return true
	}
	ok, err := filepath.Match(pattern, filepath.Base(path))
	return err == nil && ok
}

// matchDoubleStar handles the recursive forms "dir/**", "**/name", and
// "prefix/**/suffix".
func matchDoubleStar(path, pattern string) bool {
	parts := strings.SplitN(pattern, "**", 2)
	if len(parts) == 1 {
		ok, err := filepath.Match(pattern, path)
		return err == nil && ok
	}
	prefix := strings.TrimSuffix(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	switch {
	case prefix == "" && suffix == "":
		return true

	case prefix == "":
		// "**/name": the suffix may end the path, name a component, or
		// appear as a subpath.
		if strings.HasSuffix(path, suffix) || strings.Contains(path, suffix) {
			return true
		}
		for _, component := range strings.Split(path, "/") {
			if ok, err := filepath.Match(suffix, component); err == nil && ok {
				return true
			}
		}
		return false

	case suffix == "":
		// "dir/**": everything under the directory.
		return path == prefix || strings.HasPrefix(path, prefix+"/")

	default:
		if !strings.HasPrefix(path, prefix) {
			return false
		}
		if strings.HasSuffix(path, suffix) {
			return true
		}
		ok, err := filepath.Match(suffix, filepath.Base(path))
		return err == nil && ok
	}
}
