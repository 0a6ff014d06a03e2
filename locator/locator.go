// Package locator finds the local segment provider by probing a small port window.
//
// Providers listen on an unknown port within a known range. Ports are tried one
// after another, each exactly once; the first port answering with a non-empty
// segment list wins.
package locator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segskip/segskip/constant"
	"github.com/segskip/segskip/log"
	"github.com/segskip/segskip/network"
	"github.com/segskip/segskip/segment"
)

// ErrDiscovery means no port in range served segments for the video.
var ErrDiscovery = errors.New("no segment provider found")

// Locator probes http://Host:port/<video id> for every port in [PortStart, PortEnd].
type Locator struct {
	Client    *http.Client
	Host      string
	PortStart int
	PortEnd   int
	// Timeout bounds each probe on its own. Zero or less means constant.ProviderTimeout.
	Timeout time.Duration
}

// New returns a locator with the default provider window.
func New() *Locator {
	return &Locator{
		Client:    network.Client,
		Host:      constant.ProviderHost,
		PortStart: constant.ProviderPortStart,
		PortEnd:   constant.ProviderPortEnd,
		Timeout:   constant.ProviderTimeout,
	}
}

// Result is a successful discovery.
type Result struct {
	Port     int
	Segments []segment.Segment
}

// Locate returns the segments of videoID, or an empty list when no provider has any.
func (l *Locator) Locate(ctx context.Context, videoID string) []segment.Segment {
	res, err := l.Find(ctx, videoID)
	if err != nil {
		return nil
	}
	return res.Segments
}

// Find probes the port window and reports which port answered.
func (l *Locator) Find(ctx context.Context, videoID string) (Result, error) {
	if videoID == "" {
		return Result{}, fmt.Errorf("%w: empty video id", ErrDiscovery)
	}

	logger := log.For(videoID)
	for port := l.PortStart; port <= l.PortEnd; port++ {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrDiscovery, err)
		}

		segments, err := l.probe(ctx, port, videoID)
		if err != nil {
			logger.WithField("port", port).Debugf("probe failed: %v", err)
			continue
		}

		logger.WithField("port", port).Infof("provider answered with %d segment(s)", len(segments))
		return Result{Port: port, Segments: segments}, nil
	}

	logger.Infof("no provider on %s:%d-%d", l.Host, l.PortStart, l.PortEnd)
	return Result{}, ErrDiscovery
}

// URL returns the address probed on port for videoID.
func (l *Locator) URL(port int, videoID string) string {
	u := url.URL{
		Scheme:  "http",
		Host:    l.Host + ":" + strconv.Itoa(port),
		Path:    "/" + videoID,
		RawPath: "/" + escape(videoID),
	}
	return u.String()
}

// escape encodes a path component the way browsers' encodeURIComponent does.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (l *Locator) probe(ctx context.Context, port int, videoID string) ([]segment.Segment, error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = constant.ProviderTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL(port, videoID), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	network.Decorate(req)

	client := l.Client
	if client == nil {
		client = network.Client
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := network.ReadBody(resp)
	if err != nil {
		return nil, err
	}

	return segment.Decode(body)
}
