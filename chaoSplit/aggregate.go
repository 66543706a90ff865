package chaoSplit

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// AggregateReport split => 平均耗时(秒)
type AggregateReport map[int]float64

// Aggregate 计算每个split在所有迭代中的平均耗时
func Aggregate(table *Table) (AggregateReport, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	report := make(AggregateReport, len(table.Splits))
	for _, split := range table.Splits {
		elapsed := make(stats.Float64Data, 0, len(table.Iterations))
		for _, it := range table.Iterations {
			elapsed = append(elapsed, it.Trials[split].ElapsedSeconds())
		}
		mean, err := stats.Mean(elapsed)
		if err != nil {
			return nil, errors.Wrapf(err, "mean for %d splits", split)
		}
		report[split] = mean
	}
	return report, nil
}
