// Package scanner builds checkpoint manifests from a live filesystem tree.
// It walks the base path in parallel using fastwalk and hashes file content
// with a bounded worker pool.
package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/google/uuid"

	"github.com/aezell/sprite-differ/pkg/differ/logging"
	"github.com/aezell/sprite-differ/pkg/differ/manifest"
	"github.com/aezell/sprite-differ/pkg/differ/types"
)

// progressInterval throttles OnProgress callbacks.
const progressInterval = 100 * time.Millisecond

// Result contains the manifest built by a scan plus everything that went
// wrong along the way.
type Result struct {
	// Manifest is the completed checkpoint manifest.
	Manifest *manifest.Manifest

	// Errors holds per-path failures. The scan continues past them;
	// affected files keep an empty content hash.
	Errors []types.ScanError

	// Elapsed is the total scan duration.
	Elapsed time.Duration
}

// Scanner performs a parallel manifest scan of one base path.
type Scanner struct {
	opts Options

	dirsScanned  atomic.Int64
	filesScanned atomic.Int64
	filesHashed  atomic.Int64
	bytesScanned atomic.Int64
	currentPath  atomic.Value
	lastProgress atomic.Int64

	entries   []manifest.Entry
	entriesMu sync.Mutex

	errors   []types.ScanError
	errorsMu sync.Mutex

	// root is the resolved absolute base path being scanned.
	root string
}

// New creates a Scanner with the given options, applying defaults for
// anything unset.
func New(opts Options) *Scanner {
	_ = opts.Validate()

	s := &Scanner{
		opts:    opts,
		entries: make([]manifest.Entry, 0),
		errors:  make([]types.ScanError, 0),
	}
	s.currentPath.Store("")
	return s
}

// Scan walks the base path and returns the resulting manifest. It blocks
// until complete or the context is cancelled.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	logger := logging.Get("scanner")

	root, err := s.validateRoot()
	if err != nil {
		return nil, err
	}
	s.root = root

	s.currentPath.Store(root)
	s.reportProgressForce()

	checkpointID := s.opts.CheckpointID
	if checkpointID == "" {
		checkpointID = uuid.NewString()
	}

	logger.Info("scan started", "root", root, "checkpoint", checkpointID)

	if err := s.executeWalk(ctx); err != nil {
		return nil, err
	}

	// Manifests are order-irrelevant, but a stable order keeps saved JSON
	// diffable across runs.
	sort.Slice(s.entries, func(i, j int) bool {
		return s.entries[i].Path < s.entries[j].Path
	})

	m := manifest.New(checkpointID, s.opts.Sprite, root, s.entries)

	logger.Info("scan complete",
		"files", m.TotalFiles,
		"dirs", m.TotalDirs,
		"size", types.FormatSize(m.TotalSize),
		"errors", len(s.errors),
		"elapsed", time.Since(startTime))

	return &Result{
		Manifest: m,
		Errors:   s.errors,
		Elapsed:  time.Since(startTime),
	}, nil
}

// validateRoot resolves the base path to absolute and verifies it is a
// directory.
func (s *Scanner) validateRoot() (string, error) {
	root, err := filepath.Abs(s.opts.Root)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", os.ErrInvalid
	}

	return root, nil
}

// executeWalk runs fastwalk over the root, dispatching files to the hash
// worker pool.
func (s *Scanner) executeWalk(ctx context.Context) error {
	conf := fastwalk.Config{
		Follow: false, // Don't follow symlinks.
	}

	walkCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		<-walkCtx.Done()
		close(done)
	}()

	jobs := make(chan hashJob, s.opts.HashWorkers*4)
	var wg sync.WaitGroup
	for w := 0; w < s.opts.HashWorkers; w++ {
		wg.Add(1)
		go s.hashWorker(done, &wg, jobs)
	}

	walkErr := fastwalk.Walk(&conf, s.root, s.walkCallback(done, jobs))
	close(jobs)
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if walkErr != nil && !errors.Is(walkErr, context.Canceled) && !errors.Is(walkErr, fastwalk.ErrSkipFiles) {
		return walkErr
	}
	return nil
}

// walkCallback returns the callback function for fastwalk.Walk.
func (s *Scanner) walkCallback(done <-chan struct{}, jobs chan<- hashJob) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		select {
		case <-done:
			return fastwalk.ErrSkipFiles
		default:
		}

		// Handle errors gracefully - record and continue.
		if err != nil {
			s.addError(path, err)
			return nil
		}

		if s.isExcluded(path) {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(s.root, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			s.processDirectory(rel, d)
			return nil
		}

		if d.Type().IsRegular() {
			s.processFile(rel, path, d, jobs, done)
		}

		return nil
	}
}

// processDirectory records a directory entry.
func (s *Scanner) processDirectory(rel string, d fs.DirEntry) {
	s.dirsScanned.Add(1)
	s.currentPath.Store(rel)
	s.reportProgress()

	entry := manifest.Entry{
		Path: rel,
		Type: manifest.TypeDirectory,
	}
	if info, err := d.Info(); err == nil {
		entry.Mtime = info.ModTime()
		entry.Mode = info.Mode().String()
	}

	s.addEntry(entry)
}

// processFile stats a file and queues it for content hashing.
func (s *Scanner) processFile(rel, abs string, d fs.DirEntry, jobs chan<- hashJob, done <-chan struct{}) {
	info, err := d.Info()
	if err != nil {
		s.addError(abs, err)
		return
	}

	s.filesScanned.Add(1)
	s.bytesScanned.Add(info.Size())
	s.reportProgress()

	select {
	case jobs <- hashJob{rel: rel, abs: abs, info: info}:
	case <-done:
	}
}

// addEntry appends a manifest entry under the entries lock.
func (s *Scanner) addEntry(entry manifest.Entry) {
	s.entriesMu.Lock()
	s.entries = append(s.entries, entry)
	s.entriesMu.Unlock()
}

// addError records a scan error without stopping the scan.
func (s *Scanner) addError(path string, err error) {
	s.errorsMu.Lock()
	s.errors = append(s.errors, types.ScanError{Path: path, Error: err.Error()})
	s.errorsMu.Unlock()
}

// isExcluded checks whether a path matches any exclusion pattern.
// Patterns match against the base name as globs and against the full path
// as prefixes.
func (s *Scanner) isExcluded(path string) bool {
	if len(s.opts.Exclude) == 0 {
		return false
	}

	base := filepath.Base(path)
	for _, pattern := range s.opts.Exclude {
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
		if strings.HasPrefix(path, pattern) {
			return true
		}
	}
	return false
}

// reportProgress invokes the progress callback, throttled.
func (s *Scanner) reportProgress() {
	if s.opts.OnProgress == nil {
		return
	}

	now := time.Now().UnixNano()
	last := s.lastProgress.Load()
	if now-last < int64(progressInterval) {
		return
	}
	if !s.lastProgress.CompareAndSwap(last, now) {
		return
	}

	s.emitProgress()
}

// reportProgressForce invokes the progress callback unconditionally.
func (s *Scanner) reportProgressForce() {
	if s.opts.OnProgress == nil {
		return
	}
	s.lastProgress.Store(time.Now().UnixNano())
	s.emitProgress()
}

func (s *Scanner) emitProgress() {
	current, _ := s.currentPath.Load().(string)
	s.opts.OnProgress(types.ScanProgress{
		DirsScanned:  s.dirsScanned.Load(),
		FilesScanned: s.filesScanned.Load(),
		FilesHashed:  s.filesHashed.Load(),
		BytesScanned: s.bytesScanned.Load(),
		CurrentPath:  current,
	})
}
