package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/dtroode/quicksnatch-server/internal/model"
)

const (
	levelInfoFile = "level_info.json"
	defaultPrompt = "user@quicksnatch"
)

// LevelInfoKey is the relative location of a level descriptor, used both on disk and in the bucket.
func LevelInfoKey(level int) string {
	return path.Join(fmt.Sprintf("level%d", level), levelInfoFile)
}

// FallbackLevelInfo is served when a level has no descriptor.
func FallbackLevelInfo(level int) model.LevelInfo {
	return model.LevelInfo{
		Level:       level,
		Title:       "Unknown Level",
		Description: "Level information not available.",
		Prompt:      defaultPrompt,
		Files:       map[string]string{},
		Hints:       []string{"Level information not available"},
	}
}

// DecodeLevelInfo parses a descriptor and fills defaults for omitted fields.
func DecodeLevelInfo(level int, data []byte) (model.LevelInfo, error) {
	var info model.LevelInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return model.LevelInfo{}, fmt.Errorf("failed to decode level %d info: %w", level, err)
	}
	if info.Level == 0 {
		info.Level = level
	}
	if info.Level != level {
		return model.LevelInfo{}, fmt.Errorf("level info declares level %d, expected %d", info.Level, level)
	}
	if info.Prompt == "" {
		info.Prompt = defaultPrompt
	}
	if info.Files == nil {
		info.Files = map[string]string{}
	}
	if info.Hints == nil {
		info.Hints = []string{}
	}
	return info, nil
}

var _ model.LevelInfoSource = (*FileSource)(nil)

// FileSource reads descriptors from <dir>/level<N>/level_info.json.
type FileSource struct {
	fs  afero.Fs
	dir string
}

// NewFileSource creates a FileSource on top of the given filesystem.
func NewFileSource(fs afero.Fs, dir string) *FileSource {
	return &FileSource{fs: fs, dir: dir}
}

// LoadLevelInfo implements model.LevelInfoSource.
func (s *FileSource) LoadLevelInfo(_ context.Context, level int) (model.LevelInfo, error) {
	data, err := afero.ReadFile(s.fs, path.Join(s.dir, LevelInfoKey(level)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.LevelInfo{}, model.ErrNotFound
		}
		return model.LevelInfo{}, fmt.Errorf("failed to read level %d info: %w", level, err)
	}
	return DecodeLevelInfo(level, data)
}

var _ model.LevelInfoSource = (*BucketSource)(nil)

// BucketSource reads descriptors from object storage under the same keys as FileSource.
type BucketSource struct {
	storage model.Storage
}

// NewBucketSource creates a BucketSource.
func NewBucketSource(storage model.Storage) *BucketSource {
	return &BucketSource{storage: storage}
}

// LoadLevelInfo implements model.LevelInfoSource.
func (s *BucketSource) LoadLevelInfo(ctx context.Context, level int) (model.LevelInfo, error) {
	key := LevelInfoKey(level)

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return model.LevelInfo{}, fmt.Errorf("failed to check level %d info: %w", level, err)
	}
	if !exists {
		return model.LevelInfo{}, model.ErrNotFound
	}

	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		return model.LevelInfo{}, fmt.Errorf("failed to download level %d info: %w", level, err)
	}
	defer rc.Close()

	buf, err := io.ReadAll(rc)
	if err != nil {
		return model.LevelInfo{}, fmt.Errorf("failed to read level %d info: %w", level, err)
	}
	return DecodeLevelInfo(level, buf)
}

type cachedInfo struct {
	info     model.LevelInfo
	err      error
	loadedAt time.Time
}

// CachedSource keeps descriptors from another source for a fixed duration.
// Misses (ErrNotFound) are cached too, other errors are not.
type CachedSource struct {
	source        model.LevelInfoSource
	cacheDuration time.Duration
	now           func() time.Time

	mu    sync.RWMutex
	cache map[int]cachedInfo
}

// NewCachedSource wraps source with a cache.
func NewCachedSource(source model.LevelInfoSource, cacheDuration time.Duration) *CachedSource {
	return &CachedSource{
		source:        source,
		cacheDuration: cacheDuration,
		now:           time.Now,
		cache:         make(map[int]cachedInfo),
	}
}

// LoadLevelInfo implements model.LevelInfoSource.
func (c *CachedSource) LoadLevelInfo(ctx context.Context, level int) (model.LevelInfo, error) {
	c.mu.RLock()
	cached, ok := c.cache[level]
	c.mu.RUnlock()

	if ok && c.now().Sub(cached.loadedAt) < c.cacheDuration {
		return cached.info, cached.err
	}

	info, err := c.source.LoadLevelInfo(ctx, level)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.LevelInfo{}, err
	}

	c.mu.Lock()
	c.cache[level] = cachedInfo{info: info, err: err, loadedAt: c.now()}
	c.mu.Unlock()

	return info, err
}
