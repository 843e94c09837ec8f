package dedup

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type seenEntry struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// PostCache remembers which post permalinks have already been ingested so a
// rescrape of the same group does not re-insert the same jobs.
type PostCache struct {
	mu       sync.Mutex
	filePath string
	seen     map[string]int64
}

const thirtyDaysMs = int64(30 * 24 * 60 * 60 * 1000)

// NewPostCache creates or loads a post cache
func NewPostCache(cacheDir string) *PostCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create cache directory: %v", err)
	}
	cache := &PostCache{
		filePath: filepath.Join(cacheDir, "seen_posts.json"),
		seen:     make(map[string]int64),
	}
	cache.load()
	return cache
}

// IsSeen checks if a post permalink has already been processed.
// Mutex is required because the cache is shared between the scheduler run
// and API-triggered ingests.
func (pc *PostCache) IsSeen(url string) bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	_, exists := pc.seen[url]
	return exists
}

func (pc *PostCache) Add(urls []string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := time.Now().UnixMilli()
	changed := false
	for _, url := range urls {
		if url == "" {
			continue
		}
		if _, exists := pc.seen[url]; !exists {
			pc.seen[url] = now
			changed = true
		}
	}

	if changed {
		pc.save()
	}
}

// Len reports how many permalinks are currently remembered.
func (pc *PostCache) Len() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return len(pc.seen)
}

// load reads the cache from disk, dropping entries older than 30 days.
func (pc *PostCache) load() {
	data, err := os.ReadFile(pc.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read seen_posts.json: %v", err)
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("⚠️ Failed to parse seen_posts.json: %v", err)
		return
	}

	thirtyDaysAgo := time.Now().UnixMilli() - thirtyDaysMs
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > thirtyDaysAgo {
			pc.seen[e.URL] = e.Timestamp
			loaded++
		}
	}
	log.Printf("📋 Loaded %d previously seen posts (%d expired and removed)", loaded, len(entries)-loaded)
}

// save writes the current cache to disk
func (pc *PostCache) save() {
	entries := make([]seenEntry, 0, len(pc.seen))
	for url, ts := range pc.seen {
		entries = append(entries, seenEntry{URL: url, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal seen posts: %v", err)
		return
	}
	if err := os.WriteFile(pc.filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write seen_posts.json: %v", err)
	}
}
