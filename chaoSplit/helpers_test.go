package chaoSplit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/memory"
)

var discardLogger = &log.Logger{Handler: discard.Default, Level: log.DebugLevel}

func testConfig(url string, splits ...int) Config {
	return Config{
		URL:        url,
		Splits:     splits,
		Iterations: 1,
		Cooldown:   Duration(time.Millisecond),
		Quiet:      true,
		Logger:     discardLogger,
	}
}

func memoryLogger() (*log.Logger, *memory.Handler) {
	handler := memory.New()
	return &log.Logger{Handler: handler, Level: log.DebugLevel}, handler
}

func hasMessage(handler *memory.Handler, prefix string) bool {
	for _, entry := range handler.Entries {
		if strings.HasPrefix(entry.Message, prefix) {
			return true
		}
	}
	return false
}

// rangeServer 支持range请求的测试服务器, gets统计GET次数
type rangeServer struct {
	*httptest.Server
	gets int64
}

type serverOptions struct {
	probeDelay time.Duration
	getStatus  int

	// 非nil时请求在barrier上等待, 超时返回503
	headBarrier *barrier
	getBarrier  *barrier
}

// barrier n个请求都到达后才一起放行
type barrier struct {
	n       int64
	arrived int64
	all     chan struct{}
	timeout time.Duration
}

func newBarrier(n int, timeout time.Duration) *barrier {
	return &barrier{n: int64(n), all: make(chan struct{}), timeout: timeout}
}

func (b *barrier) wait() bool {
	if atomic.AddInt64(&b.arrived, 1) == b.n {
		close(b.all)
	}
	timer := time.NewTimer(b.timeout)
	defer timer.Stop()
	select {
	case <-b.all:
		return true
	case <-timer.C:
		return false
	}
}

func newRangeServer(t *testing.T, size int) *rangeServer {
	return newRangeServerWith(t, size, serverOptions{})
}

func newRangeServerWith(t *testing.T, size int, opts serverOptions) *rangeServer {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	rs := &rangeServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead && opts.probeDelay > 0 {
			time.Sleep(opts.probeDelay)
		}
		if r.Method == http.MethodHead && opts.headBarrier != nil && !opts.headBarrier.wait() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.Method == http.MethodGet {
			atomic.AddInt64(&rs.gets, 1)
			if opts.getBarrier != nil && !opts.getBarrier.wait() {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			if opts.getStatus != 0 {
				w.WriteHeader(opts.getStatus)
				return
			}
		}
		http.ServeContent(w, r, "blob", time.Time{}, bytes.NewReader(data))
	}))
	t.Cleanup(rs.Close)
	return rs
}

// newPlainServer 不返回Accept-Ranges的服务器
func newPlainServer(t *testing.T, size int) *httptest.Server {
	data := bytes.Repeat([]byte("a"), size)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(size))
		if r.Method == http.MethodHead {
			return
		}
		w.Write(data)
	}))
	t.Cleanup(ts.Close)
	return ts
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) {
	return f(r)
}

func fakeResponse(status int, header http.Header) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     header,
		Body:       io.NopCloser(strings.NewReader("")),
	}
}

// droppingScheduler 丢掉第一个任务, 其余任务正常并发执行
type droppingScheduler struct {
	wg      sync.WaitGroup
	dropped bool
}

func (d *droppingScheduler) Go(task func()) {
	if !d.dropped {
		d.dropped = true
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		task()
	}()
}

func (d *droppingScheduler) Wait() {
	d.wg.Wait()
}

// duplicatingScheduler 第一个任务执行两次, 最后一个任务丢掉
type duplicatingScheduler struct {
	wg    sync.WaitGroup
	first func()
	calls int
	total int
}

func (d *duplicatingScheduler) Go(task func()) {
	d.calls++
	if d.calls == 1 {
		d.first = task
	}
	if d.calls == d.total {
		task = d.first
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		task()
	}()
}

func (d *duplicatingScheduler) Wait() {
	d.wg.Wait()
}
