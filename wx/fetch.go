// wx/fetch.go
// Copyright(c) 2024-2026 navlog contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	av "github.com/mmp/navlog/aviation"
	"github.com/mmp/navlog/log"
	"github.com/mmp/navlog/math"
	"github.com/mmp/navlog/util"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// PointWinds is the wind profile at one point along a route, placed by
// its fraction of the route's length and its perpendicular distance off
// the route centerline. Profile is nil when the fetch for this point
// failed; the ground-speed integration degrades that point to still air.
type PointWinds struct {
	Fraction     float32
	CrossTrackNM float32
	Profile      Profile
}

const (
	// The gridded-model service rate limit: issue point queries in fixed
	// batches with a delay between them, and retry the failures of all
	// batches once, serially, after a short breather.
	fetchBatchSize  = 5
	fetchBatchDelay = 2 * time.Second
	fetchTimeout    = 15 * time.Second
	fetchRetryDelay = 3 * time.Second

	// Number of points sampled along the route for the gridded model.
	routeSamples = 20

	gridSpacing = 0.25 // degrees
)

///////////////////////////////////////////////////////////////////////////
// GriddedClient

// GriddedClient fetches point wind profiles from the gridded-model
// collaborator. Fetched cell profiles are kept in a bounded LRU keyed by
// grid cell so that nearby routes planned in the same process don't
// refetch them.
type GriddedClient struct {
	baseURL string
	client  *http.Client
	cache   *lru.Cache[string, Profile]
	lg      *log.Logger
}

func NewGriddedClient(baseURL string, lg *log.Logger) *GriddedClient {
	cache, _ := lru.New[string, Profile](512)
	return &GriddedClient{
		baseURL: baseURL,
		client:  &http.Client{},
		cache:   cache,
		lg:      lg,
	}
}

// gridCell returns the model grid indices for a point: longitude mapped
// to [0,360) in gridSpacing steps, latitude offset from the south pole.
func gridCell(p math.Point2LL) (x, y int) {
	lon := p.Longitude()
	for lon < 0 {
		lon += 360
	}
	x = int(lon/gridSpacing + 0.5)
	y = int((p.Latitude()+90)/gridSpacing + 0.5)
	return
}

func (g *GriddedClient) cellURL(x, y int) string {
	return fmt.Sprintf("%s?x=%d&y=%d&vars=ugrdprs,vgrdprs,tmpprs", g.baseURL, x, y)
}

// RouteWinds samples routeSamples points along the great circle from dep
// to dest and fetches the wind profile at each one. Failed points are
// returned with a nil Profile rather than failing the route; a single
// slow or broken point query must not abort the whole plan.
func (g *GriddedClient) RouteWinds(ctx context.Context, dep, dest av.Airport) ([]PointWinds, error) {
	points := make([]PointWinds, routeSamples)
	urls := make([]string, routeSamples)
	for i := range points {
		t := float32(i) / (routeSamples - 1)
		p := math.IntermediatePoint2LL(dep.Location, dest.Location, t)
		x, y := gridCell(p)

		points[i].Fraction = t
		urls[i] = g.cellURL(x, y)
	}

	// First pass: fixed-size concurrent batches. Each fetch writes only
	// its own slot, so no locking is needed; failures are collected for
	// the retry pass.
	var failed []int
	for start := 0; start < len(points); start += fetchBatchSize {
		if start > 0 {
			select {
			case <-time.After(fetchBatchDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		batch := points[start:min(start+fetchBatchSize, len(points))]
		errs := make([]error, len(batch))

		eg, gctx := errgroup.WithContext(ctx)
		for i := range batch {
			i := i
			eg.Go(func() error {
				profile, err := g.fetchCell(gctx, urls[start+i])
				if err != nil {
					errs[i] = err
					return nil // degrade, don't cancel the batch
				}
				batch[i].Profile = profile
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}

		for i, err := range errs {
			if err != nil {
				g.lg.Warnf("%s: point wind fetch failed: %v", urls[start+i], err)
				failed = append(failed, start+i)
			}
		}
	}

	// Retry the failures once, serially. Anything that fails a second
	// time stays degraded to still air.
	if len(failed) > 0 {
		select {
		case <-time.After(fetchRetryDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		for _, i := range failed {
			profile, err := g.fetchCell(ctx, urls[i])
			if err != nil {
				g.lg.Warnf("%s: point wind fetch failed on retry: %v", urls[i], err)
				continue
			}
			points[i].Profile = profile
		}
	}

	return points, nil
}

func (g *GriddedClient) fetchCell(ctx context.Context, url string) (Profile, error) {
	if p, ok := g.cache.Get(url); ok {
		return p, nil
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, err
	}

	// The service is known to return HTML error pages with a 200 status
	// when it's overloaded.
	if isHTMLErrorPage(body) {
		return nil, fmt.Errorf("got HTML error page with 200 status")
	}

	profile, err := DecodeGridded(string(body))
	if err != nil {
		return nil, err
	}

	g.cache.Add(url, profile)
	return profile, nil
}

func isHTMLErrorPage(body []byte) bool {
	s := strings.ToLower(strings.TrimSpace(string(body[:min(len(body), 256)])))
	return strings.HasPrefix(s, "<!doctype") || strings.HasPrefix(s, "<html")
}

///////////////////////////////////////////////////////////////////////////
// BulletinSource

// BulletinSource provides route winds from the station winds-aloft
// bulletin: it fetches the bulletin text for a forecast horizon, decodes
// it, resolves each station's location through the airport directory, and
// keeps the stations near the route. Fetched bulletins are cached on disk
// across runs for the life of the forecast cycle.
type BulletinSource struct {
	baseURL string
	horizon int // forecast horizon in hours: 6, 12, or 24
	client  *http.Client
	dir     av.Directory
	lg      *log.Logger
}

// How far off the route a bulletin station may be and still contribute
// wind; stations inside the band get a segment of the route weighted by
// how close they sit to the centerline.
const stationBandNM = 100

const bulletinCacheTTL = 3 * time.Hour

func NewBulletinSource(baseURL string, horizon int, dir av.Directory, lg *log.Logger) *BulletinSource {
	return &BulletinSource{
		baseURL: baseURL,
		horizon: horizon,
		client:  &http.Client{Timeout: fetchTimeout},
		dir:     dir,
		lg:      lg,
	}
}

func (b *BulletinSource) RouteWinds(ctx context.Context, dep, dest av.Airport) ([]PointWinds, error) {
	text, err := b.fetchBulletin(ctx)
	if err != nil {
		return nil, err
	}

	var e util.ErrorLogger
	bulletin := DecodeBulletin(text, &e)
	if e.HaveErrors() {
		// Partial decode failures are routine; log them and use what we got.
		b.lg.Warnf("bulletin decode: %s", e.String())
	}
	if len(bulletin.Stations) == 0 {
		return nil, fmt.Errorf("no stations decoded from bulletin")
	}

	total := math.NMDistance2LL(dep.Location, dest.Location)
	if total == 0 {
		return nil, nil
	}

	var points []PointWinds
	for station, profile := range bulletin.Stations {
		// Bulletin stations are 3-letter CONUS identifiers.
		ap, err := b.dir.Lookup("K" + station)
		if err != nil {
			continue
		}

		xt := math.CrossTrackDistance2LL(ap.Location, dep.Location, dest.Location)
		at := math.AlongTrackDistance2LL(ap.Location, dep.Location, dest.Location)
		if math.Abs(xt) > stationBandNM || at < 0 || at > total {
			continue
		}

		points = append(points, PointWinds{
			Fraction:     at / total,
			CrossTrackNM: math.Abs(xt),
			Profile:      profile,
		})
	}

	slices.SortFunc(points, func(a, b PointWinds) int {
		if a.Fraction < b.Fraction {
			return -1
		} else if a.Fraction > b.Fraction {
			return 1
		}
		return 0
	})

	return points, nil
}

func (b *BulletinSource) fetchBulletin(ctx context.Context) (string, error) {
	cachePath := fmt.Sprintf("fb%02d.txt", b.horizon)

	var cached string
	if t, err := util.CacheRetrieveObject(cachePath, &cached); err == nil && time.Since(t) < bulletinCacheTTL {
		return cached, nil
	}

	url := fmt.Sprintf("%s?fint=%02d", b.baseURL, b.horizon)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bulletin fetch: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return "", err
	}
	if isHTMLErrorPage(body) {
		return "", fmt.Errorf("bulletin fetch: got HTML error page with 200 status")
	}

	text := string(body)
	if err := util.CacheStoreObject(cachePath, text); err != nil {
		b.lg.Warnf("caching bulletin: %v", err)
	}

	return text, nil
}
