package chaoSplit

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	rs := newRangeServer(t, 1000)
	splitter := NewSplitter(testConfig(rs.URL, 1))

	tests := []struct {
		name string
		r    ByteRange
		want int64
	}{
		{name: "head of file", r: ByteRange{Start: 0, End: 100}, want: 100},
		{name: "middle", r: ByteRange{Start: 250, End: 500}, want: 250},
		{name: "open end", r: ByteRange{Start: 900, End: 1000, OpenEnd: true}, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := splitter.Fetch(context.Background(), tt.r)
			if err != nil {
				t.Fatal(err)
			}
			if !outcome.Success || outcome.ByteCount != tt.want || outcome.Range != tt.r {
				t.Fatalf("unexpected outcome %+v", outcome)
			}
		})
	}
}

func TestFetchSendsRangeHeader(t *testing.T) {
	config := testConfig("http://example.com/blob", 1)
	config.Header = map[string]string{"User-Agent": "tester"}
	var rangeHeader, userAgent string
	config.Client = doerFunc(func(r *http.Request) (*http.Response, error) {
		rangeHeader = r.Header.Get("Range")
		userAgent = r.Header.Get("User-Agent")
		return fakeResponse(http.StatusPartialContent, http.Header{}), nil
	})
	if _, err := NewSplitter(config).Fetch(context.Background(), ByteRange{Start: 10, End: 20}); err != nil {
		t.Fatal(err)
	}
	if rangeHeader != "bytes=10-19" {
		t.Fatalf("unexpected Range %q", rangeHeader)
	}
	if userAgent != "tester" {
		t.Fatalf("unexpected User-Agent %q", userAgent)
	}
}

func TestFetchStatusError(t *testing.T) {
	rs := newRangeServerWith(t, 1000, serverOptions{getStatus: http.StatusInternalServerError})
	_, err := NewSplitter(testConfig(rs.URL, 1)).Fetch(context.Background(), ByteRange{Start: 0, End: 10})
	var statusErr *FetchStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("unexpected error %v", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", statusErr.StatusCode)
	}
}

func TestFetchTimeout(t *testing.T) {
	config := testConfig("http://example.com/blob", 1)
	config.FetchTimeout = 10 * time.Millisecond
	config.Client = doerFunc(func(r *http.Request) (*http.Response, error) {
		<-r.Context().Done()
		return nil, r.Context().Err()
	})
	_, err := NewSplitter(config).Fetch(context.Background(), ByteRange{Start: 0, End: 10})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("unexpected error %v", err)
	}
}
