package chaoSplit

import (
	"time"
)

// TrialResult 一次分段下载的计时结果
type TrialResult struct {
	SplitFactor int           `yaml:"splits"`
	Elapsed     time.Duration `yaml:"elapsed"`
	Ranges      int           `yaml:"ranges"`
	Bytes       int64         `yaml:"bytes"`
}

func (t TrialResult) ElapsedSeconds() float64 {
	return t.Elapsed.Seconds()
}

// Iteration 一轮迭代, split => 结果
type Iteration struct {
	Index  int                 `yaml:"index"`
	Trials map[int]TrialResult `yaml:"trials"`
}

// Table 整个实验的结果
type Table struct {
	RunID      string      `yaml:"run_id"`
	URL        string      `yaml:"url"`
	Splits     []int       `yaml:"splits,flow"`
	Iterations []Iteration `yaml:"iterations"`
}

// Validate 每轮迭代都必须包含所有配置的split
func (t *Table) Validate() error {
	if t == nil || len(t.Iterations) == 0 || len(t.Splits) == 0 {
		return ErrEmptyTable
	}
	for _, it := range t.Iterations {
		for _, split := range t.Splits {
			if _, ok := it.Trials[split]; !ok {
				return &MissingTrialError{Iteration: it.Index, SplitFactor: split}
			}
		}
	}
	return nil
}

// TotalBytes 单次下载的字节数(取第一个结果)
func (t *Table) TotalBytes() int64 {
	for _, it := range t.Iterations {
		for _, trial := range it.Trials {
			return trial.Bytes
		}
	}
	return 0
}
