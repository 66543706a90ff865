package chaoSplit

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Driver 按配置的迭代次数, 对每个split运行Splitter
type Driver struct {
	config   Config
	splitter *Splitter
}

func NewDriver(config Config) (*Driver, error) {
	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Driver{config: config, splitter: NewSplitter(config)}, nil
}

// Run 迭代之间串行, 同一轮中所有split并发运行
// 任何一个split没有结果, 整个实验失败
func (d *Driver) Run(ctx context.Context) (*Table, error) {
	table := &Table{
		RunID:  uuid.New().String(),
		URL:    d.config.URL,
		Splits: append([]int(nil), d.config.Splits...),
	}
	logger := d.config.Logger.WithFields(log.Fields{"run_id": table.RunID})

	for i := 1; i <= d.config.Iterations; i++ {
		logger.Infof("Starting iteration %d", i)
		iteration, err := d.runIteration(ctx, i)
		if err != nil {
			return nil, err
		}
		table.Iterations = append(table.Iterations, iteration)
		if d.config.OnTrial != nil {
			for _, split := range d.config.Splits {
				d.config.OnTrial(i, iteration.Trials[split])
			}
		}

		//迭代之间休息, 不计时
		if i < d.config.Iterations {
			if err := sleep(ctx, d.config.CooldownDuration()); err != nil {
				return nil, err
			}
		}
	}
	return table, nil
}

func (d *Driver) runIteration(ctx context.Context, index int) (Iteration, error) {
	results := make([]*TrialResult, len(d.config.Splits))
	g, gctx := errgroup.WithContext(ctx)
	for slot, split := range d.config.Splits {
		slot, split := slot, split
		g.Go(func() error {
			trial, err := d.splitter.Run(gctx, split)
			if err != nil {
				return &MissingTrialError{Iteration: index, SplitFactor: split, Err: err}
			}
			results[slot] = trial
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Iteration{}, err
	}

	iteration := Iteration{Index: index, Trials: make(map[int]TrialResult, len(results))}
	for slot, trial := range results {
		if trial == nil {
			return Iteration{}, &MissingTrialError{Iteration: index, SplitFactor: d.config.Splits[slot]}
		}
		iteration.Trials[trial.SplitFactor] = *trial
	}
	return iteration, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
