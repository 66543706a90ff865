package chaoSplit

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/bzsome/ChaoGoSplit/utils"
)

// Fetch 分段下载, 读完整个响应体再返回, 保证计时包含完整传输
func (s *Splitter) Fetch(ctx context.Context, r ByteRange) (FetchOutcome, error) {
	outcome := FetchOutcome{Range: r}
	if s.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.FetchTimeout)
		defer cancel()
	}

	s.diagf("range-get bytes %s", r)

	httpRequest, err := utils.BuildHTTPRequest(ctx, http.MethodGet, s.config.URL, s.config.Header)
	if err != nil {
		return outcome, errors.Wrapf(err, "range-get %s", r)
	}
	httpRequest.Header.Set("Range", r.Header())
	httpResponse, err := s.config.Client.Do(httpRequest)
	if err != nil {
		return outcome, errors.Wrapf(err, "range-get %s", r)
	}
	defer httpResponse.Body.Close()
	if httpResponse.StatusCode/100 != 2 {
		return outcome, &FetchStatusError{Range: r, StatusCode: httpResponse.StatusCode}
	}

	outcome.ByteCount, err = utils.DrainBody(httpResponse.Body)
	if err != nil {
		return outcome, errors.Wrapf(err, "range-get %s: read body", r)
	}
	outcome.Success = true
	return outcome, nil
}
