package chaoSplit

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrNotCandidate 目标不支持range请求, 不能参与实验
	ErrNotCandidate = errors.New("range requests not supported")

	// ErrEmptyTable 没有任何迭代结果
	ErrEmptyTable = errors.New("experiment table has no iterations")

	// ErrInvalidConfig 配置不合法
	ErrInvalidConfig = errors.New("invalid experiment config")
)

// ProbeError HEAD请求失败(网络错误或非2xx)
type ProbeError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *ProbeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("probe %s: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("probe %s: response status error:%d", e.URL, e.StatusCode)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// NotCandidateError 探测失败或不支持分段, Run不产生结果
type NotCandidateError struct {
	URL   string
	Cause error
}

func (e *NotCandidateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s", e.URL, ErrNotCandidate, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.URL, ErrNotCandidate)
}

func (e *NotCandidateError) Is(target error) bool { return target == ErrNotCandidate }

func (e *NotCandidateError) Unwrap() error { return e.Cause }

// FetchStatusError 分段请求返回了非2xx
type FetchStatusError struct {
	Range      ByteRange
	StatusCode int
}

func (e *FetchStatusError) Error() string {
	return fmt.Sprintf("range-get %s: response status error:%d", e.Range, e.StatusCode)
}

// CompletionMismatchError 完成的分段数和派发的不一致, 说明有任务丢失
type CompletionMismatchError struct {
	Dispatched int
	Completed  int
}

func (e *CompletionMismatchError) Error() string {
	return fmt.Sprintf("dispatched %d ranges but %d completed", e.Dispatched, e.Completed)
}

type InvalidSplitError struct {
	Splits     int
	TotalBytes int64
}

func (e *InvalidSplitError) Error() string {
	if e.Splits < 1 {
		return fmt.Sprintf("split factor must be >= 1, got %d", e.Splits)
	}
	return fmt.Sprintf("cannot split %d bytes into %d ranges", e.TotalBytes, e.Splits)
}

// MissingTrialError 某次迭代中缺少某个split的结果
type MissingTrialError struct {
	Iteration   int
	SplitFactor int
	Err         error
}

func (e *MissingTrialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("iteration %d: no result for %d splits: %s", e.Iteration, e.SplitFactor, e.Err)
	}
	return fmt.Sprintf("iteration %d: no result for %d splits", e.Iteration, e.SplitFactor)
}

func (e *MissingTrialError) Unwrap() error { return e.Err }
