package chaoSplit

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"

	"github.com/bzsome/ChaoGoSplit/utils"
)

// Probe 发送HEAD请求, 返回文件是否支持分段以及文件大小
// 只读响应头, 不下载文件内容
func (s *Splitter) Probe(ctx context.Context) (ResourceDescriptor, error) {
	rd := ResourceDescriptor{URL: s.config.URL}
	httpRequest, err := utils.BuildHTTPRequest(ctx, http.MethodHead, s.config.URL, s.config.Header)
	if err != nil {
		return rd, &ProbeError{URL: s.config.URL, Err: err}
	}
	response, err := s.config.Client.Do(httpRequest)
	if err != nil {
		return rd, &ProbeError{URL: s.config.URL, Err: err}
	}
	defer response.Body.Close()
	if response.StatusCode/100 != 2 {
		return rd, &ProbeError{URL: s.config.URL, StatusCode: response.StatusCode}
	}

	// Is support range 支持分段下载
	acceptRanges := response.Header.Get("Accept-Ranges")
	contentLength := response.Header.Get("Content-Length")
	if strings.EqualFold(strings.TrimSpace(acceptRanges), "bytes") && contentLength != "" {
		size, err := strconv.ParseInt(strings.TrimSpace(contentLength), 10, 64)
		if err == nil && size >= 0 {
			rd.SupportsRanges = true
			rd.TotalBytes = size
			rd.HasSize = true
		}
	}

	s.diag().WithFields(log.Fields{
		"accept_ranges":  acceptRanges,
		"content_length": contentLength,
	}).Debug("probe response")
	if rd.Candidate() {
		s.diagf("URL %s accepts range queries, content-length %s", s.config.URL, humanize.Bytes(uint64(rd.TotalBytes)))
	}
	return rd, nil
}
