// Package media prefetches gallery images and videos referenced by route
// payloads so they are warm before a viewer reaches them.
package media

import (
	"container/list"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/lumenworks/galleria-go/internal/domain/content"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/logging"
	"github.com/lumenworks/galleria-go/internal/infrastructure/observability/performance"
	"github.com/lumenworks/galleria-go/pkg/config"
)

// Preloader fetches media URLs in small batches. Individual fetch failures
// are logged and swallowed; a broken image never blocks the rest of a batch.
type Preloader struct {
	client     *http.Client
	batchSize  int
	batchPause time.Duration
	timeout    time.Duration
	logger     *logging.ChanneledLogger
	perf       *performance.Tracker

	mu          sync.Mutex
	knownImages *knownSet
	knownVideos *knownSet
}

func NewPreloader(logger *logging.ChanneledLogger, perf *performance.Tracker) *Preloader {
	return &Preloader{
		client:      &http.Client{Timeout: config.UpstreamTimeout},
		batchSize:   config.PrefetchBatchSize,
		batchPause:  config.PrefetchBatchPause,
		timeout:     config.PrefetchTimeout,
		logger:      logger,
		perf:        perf,
		knownImages: newKnownSet(config.PrefetchKnownPerType),
		knownVideos: newKnownSet(config.PrefetchKnownPerType),
	}
}

// PrefetchPayload extracts every media URL from a route payload and warms the
// ones not recently seen.
func (p *Preloader) PrefetchPayload(payload any) {
	urls := content.MediaURLs(payload)
	p.Prefetch(urls.ImageURLs, urls.VideoURLs)
}

// Prefetch warms the given URLs in batches, pausing between batches to keep
// pressure off the origin.
func (p *Preloader) Prefetch(imageURLs, videoURLs []string) {
	images := p.filterUnknown(p.knownImages, imageURLs)
	videos := p.filterUnknown(p.knownVideos, videoURLs)
	if len(images) == 0 && len(videos) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	marker := p.perf.StartOperation("media:batch_prefetch")
	defer p.perf.CompleteOperation(marker)
	marker.AddMetadata("images", len(images))
	marker.AddMetadata("videos", len(videos))

	type job struct {
		url   string
		video bool
	}
	jobs := make([]job, 0, len(images)+len(videos))
	for _, u := range images {
		jobs = append(jobs, job{url: u})
	}
	for _, u := range videos {
		jobs = append(jobs, job{url: u, video: true})
	}

	for start := 0; start < len(jobs); start += p.batchSize {
		end := start + p.batchSize
		if end > len(jobs) {
			end = len(jobs)
		}

		var wg sync.WaitGroup
		for _, j := range jobs[start:end] {
			wg.Add(1)
			go func(j job) {
				defer wg.Done()
				if j.video {
					p.PreloadVideo(ctx, j.url)
				} else {
					p.PreloadImage(ctx, j.url)
				}
			}(j)
		}
		wg.Wait()

		if ctx.Err() != nil {
			p.logger.Media().Warn("Prefetch window expired", "remaining", len(jobs)-end)
			return
		}
		if end < len(jobs) {
			select {
			case <-time.After(p.batchPause):
			case <-ctx.Done():
				return
			}
		}
	}
}

// PreloadImage fetches and decodes an image. Failures are logged only.
func (p *Preloader) PreloadImage(ctx context.Context, url string) {
	if err := p.fetchAndProbeImage(ctx, url); err != nil {
		p.logger.Media().Warn("Image prefetch failed", "url", url, "error", err.Error())
	}
}

// PreloadVideo probes a video URL without downloading the full stream.
// Failures are logged only.
func (p *Preloader) PreloadVideo(ctx context.Context, url string) {
	if err := p.probeVideo(ctx, url); err != nil {
		p.logger.Media().Warn("Video prefetch failed", "url", url, "error", err.Error())
	}
}

// filterUnknown returns the URLs not in the known set and records them as
// seen. Recording up front keeps concurrent payload loads from duplicating
// fetches.
func (p *Preloader) filterUnknown(set *knownSet, urls []string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var fresh []string
	for _, u := range urls {
		if u == "" {
			continue
		}
		if set.touch(u) {
			continue
		}
		set.add(u)
		fresh = append(fresh, u)
	}
	return fresh
}

// knownSet is a fixed-capacity LRU of URLs already prefetched. URLs evicted
// from the set may be fetched again later.
type knownSet struct {
	capacity int
	order    *list.List
	index    map[string]*list.Element
}

func newKnownSet(capacity int) *knownSet {
	return &knownSet{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}
}

// touch reports whether the URL is already known, refreshing its recency.
func (k *knownSet) touch(url string) bool {
	if el, ok := k.index[url]; ok {
		k.order.MoveToFront(el)
		return true
	}
	return false
}

func (k *knownSet) add(url string) {
	k.index[url] = k.order.PushFront(url)
	for k.order.Len() > k.capacity {
		oldest := k.order.Back()
		k.order.Remove(oldest)
		delete(k.index, oldest.Value.(string))
	}
}

func (k *knownSet) len() int {
	return k.order.Len()
}
