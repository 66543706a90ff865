package chaoSplit

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/bzsome/ChaoGoSplit/yamlConfig"
)

type SummaryRow struct {
	Splits      int     `yaml:"splits"`
	MeanSeconds float64 `yaml:"mean_seconds"`
	Speedup     string  `yaml:"speedup"` //相对第一个split的倍数
	Throughput  string  `yaml:"throughput"`
}

type Summary struct {
	RunID      string       `yaml:"run_id"`
	URL        string       `yaml:"url"`
	Iterations int          `yaml:"iterations"`
	Rows       []SummaryRow `yaml:"results"`
}

// Summarize 按配置的顺序整理结果
func Summarize(table *Table, report AggregateReport) (*Summary, error) {
	if err := table.Validate(); err != nil {
		return nil, err
	}
	summary := &Summary{
		RunID:      table.RunID,
		URL:        table.URL,
		Iterations: len(table.Iterations),
	}
	baseline := report[table.Splits[0]]
	totalBytes := table.TotalBytes()
	for _, split := range table.Splits {
		mean, ok := report[split]
		if !ok {
			return nil, &MissingTrialError{SplitFactor: split}
		}
		summary.Rows = append(summary.Rows, SummaryRow{
			Splits:      split,
			MeanSeconds: mean,
			Speedup:     speedup(baseline, mean),
			Throughput:  throughput(totalBytes, mean),
		})
	}
	return summary, nil
}

func speedup(baseline float64, mean float64) string {
	if mean <= 0 {
		return "-"
	}
	ds := decimal.NewFromFloat(baseline)
	return ds.DivRound(decimal.NewFromFloat(mean), 2).StringFixed(2)
}

func throughput(totalBytes int64, mean float64) string {
	if mean <= 0 || totalBytes <= 0 {
		return "-"
	}
	return humanize.Bytes(uint64(float64(totalBytes)/mean)) + "/s"
}

// Render 每个split一行
func Render(w io.Writer, summary *Summary) error {
	for _, row := range summary.Rows {
		_, err := fmt.Fprintf(w, "%d request splits resulted in average %2.4f sec over %d iterations (x%s, %s)\n",
			row.Splits, row.MeanSeconds, summary.Iterations, row.Speedup, row.Throughput)
		if err != nil {
			return err
		}
	}
	return nil
}

func WriteYAML(w io.Writer, summary *Summary) error {
	return yamlConfig.EncodeYaml(w, summary)
}
