package utils

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
)

// Doer 发送http请求, *http.Client 即满足
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RangeHeader 构造Range头, end<0 表示读到文件末尾
// [start, end) => bytes=start-(end-1)
func RangeHeader(start int64, end int64) string {
	if end < 0 {
		return fmt.Sprintf("bytes=%d-", start)
	}
	return fmt.Sprintf("bytes=%d-%d", start, end-1)
}

// DrainBody 读完body并丢弃数据, 返回读取的字节数
func DrainBody(body io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, err := body.Read(buf)
		total += int64(n)
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
	}
}

func BuildHTTPRequest(ctx context.Context, method string, url string, header map[string]string) (*http.Request, error) {
	// Build request
	httpRequest, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		httpRequest.Header.Set(k, v)
	}
	return httpRequest, nil
}

func BuildHTTPClient() *http.Client {
	// Cookie handle
	jar, _ := cookiejar.New(nil)

	return &http.Client{Jar: jar}
}
