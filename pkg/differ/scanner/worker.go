package scanner

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/aezell/sprite-differ/pkg/differ/manifest"
)

// hashJob carries one regular file from the walk to the hashing pool.
type hashJob struct {
	rel  string
	abs  string
	info fs.FileInfo
}

// hashBufferSize is the read buffer used when hashing file content.
const hashBufferSize = 128 * 1024

// hashWorker consumes jobs until the channel is closed or the scan is
// cancelled, emitting one manifest entry per file.
func (s *Scanner) hashWorker(done <-chan struct{}, wg *sync.WaitGroup, jobs <-chan hashJob) {
	defer wg.Done()

	buf := make([]byte, hashBufferSize)
	for {
		select {
		case <-done:
			// Drain remaining jobs without hashing so the walk can finish
			// queueing and close the channel.
			for range jobs {
			}
			return

		case job, ok := <-jobs:
			if !ok {
				return
			}
			s.addEntry(s.fileEntry(job, buf))
		}
	}
}

// fileEntry builds the manifest entry for one file, hashing its content
// unless it exceeds the configured size limit or cannot be read. Either
// way the entry keeps an empty hash and the scan continues.
func (s *Scanner) fileEntry(job hashJob, buf []byte) manifest.Entry {
	entry := manifest.Entry{
		Path:  job.rel,
		Type:  manifest.TypeFile,
		Size:  job.info.Size(),
		Mtime: job.info.ModTime(),
		Mode:  job.info.Mode().String(),
	}

	if job.info.Size() > s.opts.MaxHashSize {
		return entry
	}

	sum, err := hashFile(job.abs, buf)
	if err != nil {
		s.addError(job.abs, err)
		return entry
	}

	entry.SHA256 = sum
	s.filesHashed.Add(1)
	return entry
}

// hashFile computes the lowercase hex SHA-256 digest of a file's content.
func hashFile(path string, buf []byte) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
