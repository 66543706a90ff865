package chaoSplit

import (
	"context"
	"sort"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/dustin/go-humanize"
	"github.com/xxjwxc/gowp/workpool"

	"github.com/bzsome/ChaoGoSplit/utils"
)

var quietLogger log.Interface = &log.Logger{Handler: discard.Default, Level: log.FatalLevel}

// Scheduler 并发执行分段任务, Wait 等待所有已派发的任务结束
type Scheduler interface {
	Go(task func())
	Wait()
}

// poolScheduler 用workpool作为Scheduler
type poolScheduler struct {
	wp *workpool.WorkPool
}

func newPoolScheduler(size int) Scheduler {
	return &poolScheduler{wp: workpool.New(size)}
}

func (p *poolScheduler) Go(task func()) {
	p.wp.Do(func() error {
		task()
		return nil
	})
}

func (p *poolScheduler) Wait() {
	p.wp.Wait()
}

// Splitter 对一个url做分段下载实验
type Splitter struct {
	config       Config
	newScheduler func(size int) Scheduler
}

func NewSplitter(config Config) *Splitter {
	return &Splitter{
		config:       config.WithDefaults(),
		newScheduler: newPoolScheduler,
	}
}

// Partition 把[0, totalBytes)切成numSplits段
// 每段 totalBytes/numSplits 字节, 最后一段读到文件末尾(包含除不尽的余数)
func Partition(totalBytes int64, numSplits int) ([]ByteRange, error) {
	if numSplits < 1 || totalBytes < int64(numSplits) {
		return nil, &InvalidSplitError{Splits: numSplits, TotalBytes: totalBytes}
	}
	chunkSize := totalBytes / int64(numSplits)
	ranges := make([]ByteRange, numSplits)
	for i := range ranges {
		start := int64(i) * chunkSize
		ranges[i] = ByteRange{Start: start, End: start + chunkSize}
	}
	last := &ranges[numSplits-1]
	last.End = totalBytes
	last.OpenEnd = true
	return ranges, nil
}

// Run 探测, 分段, 并发下载所有分段并计时
// 探测(HEAD)不计入耗时. 不支持分段时返回nil和NotCandidateError, ctx取消时返回ctx.Err()
func (s *Splitter) Run(ctx context.Context, numSplits int) (*TrialResult, error) {
	if numSplits < 1 {
		return nil, &InvalidSplitError{Splits: numSplits}
	}
	rd, err := s.Probe(ctx)
	if ctx.Err() != nil {
		//取消时不是目标不支持分段, 不输出警告
		return nil, ctx.Err()
	}
	if err != nil || !rd.Candidate() {
		s.config.Logger.Warnf("%s: range requests not supported, cannot split", s.config.URL)
		return nil, &NotCandidateError{URL: s.config.URL, Cause: err}
	}
	ranges, err := Partition(rd.TotalBytes, numSplits)
	if err != nil {
		return nil, err
	}
	s.diagf("%d concurrent range-gets, content-length %s, chunk %s", numSplits,
		humanize.Bytes(uint64(rd.TotalBytes)), humanize.Bytes(uint64(ranges[0].Len())))

	timer := startTimer()
	outcomes, err := func() ([]FetchOutcome, error) {
		defer timer.Stop()
		return s.fetchAll(ctx, ranges)
	}()
	if err != nil {
		return nil, err
	}
	if err := checkCoverage(outcomes, rd.TotalBytes); err != nil {
		return nil, err
	}

	trial := &TrialResult{
		SplitFactor: numSplits,
		Elapsed:     timer.GetExeTime(),
		Ranges:      len(outcomes),
	}
	for _, outcome := range outcomes {
		trial.Bytes += outcome.ByteCount
	}
	s.diagf("Download with %d splits took %2.4f sec", numSplits, trial.ElapsedSeconds())
	return trial, nil
}

// fetchAll 所有分段同时开始, 全部结束后才返回
func (s *Splitter) fetchAll(ctx context.Context, ranges []ByteRange) ([]FetchOutcome, error) {
	doneChan := make(chan FetchOutcome, len(ranges))
	wp := s.newScheduler(len(ranges))
	for _, oneChunk := range ranges {
		//注意闭包
		wp.Go(s.doOneChunk(ctx, oneChunk, doneChan))
	}
	wp.Wait()
	close(doneChan)

	outcomes := make([]FetchOutcome, 0, len(ranges))
	for outcome := range doneChan {
		outcomes = append(outcomes, outcome)
	}
	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Range.Start < outcomes[j].Range.Start
	})
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			return outcomes, outcome.Err
		}
	}
	if len(outcomes) != len(ranges) {
		return outcomes, &CompletionMismatchError{Dispatched: len(ranges), Completed: len(outcomes)}
	}
	return outcomes, nil
}

func (s *Splitter) doOneChunk(ctx context.Context, one ByteRange, done chan<- FetchOutcome) func() {
	return func() {
		outcome, err := s.Fetch(ctx, one)
		outcome.Err = err
		done <- outcome
	}
}

// checkCoverage 完成的分段必须覆盖整个文件(同一段跑了两次而另一段丢失时数量也会相等)
func checkCoverage(outcomes []FetchOutcome, totalBytes int64) error {
	subs := make([][2]int64, 0, len(outcomes))
	distinct := make(map[[2]int64]bool, len(outcomes))
	for _, outcome := range outcomes {
		subs = append(subs, outcome.Range.Span())
		distinct[outcome.Range.Span()] = true
	}
	covered := utils.HasSubset([2]int64{0, totalBytes}, utils.MergeSub(subs))
	if !covered || len(distinct) != len(subs) || utils.GetDownTotal(subs) != totalBytes {
		return &CompletionMismatchError{Dispatched: len(outcomes), Completed: len(distinct)}
	}
	return nil
}

func (s *Splitter) diag() log.Interface {
	if s.config.Quiet {
		return quietLogger
	}
	return s.config.Logger
}

func (s *Splitter) diagf(format string, v ...interface{}) {
	s.diag().Infof(format, v...)
}

// exeTimer 记录开始和结束时间, Stop 应放在defer中
type exeTimer struct {
	statTime time.Time
	endTime  time.Time
}

func startTimer() *exeTimer {
	return &exeTimer{statTime: time.Now()}
}

func (t *exeTimer) Stop() {
	t.endTime = time.Now()
}

func (t *exeTimer) GetExeTime() time.Duration {
	return t.endTime.Sub(t.statTime)
}
