package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"

	"github.com/bzsome/ChaoGoSplit/chaoSplit"
	"github.com/bzsome/ChaoGoSplit/utils"
	"github.com/bzsome/ChaoGoSplit/yamlConfig"
)

// options 命令行参数, 为空的字段不覆盖配置文件
type options struct {
	ConfigFile   string
	URL          string
	Splits       []int
	Iterations   int
	Cooldown     *time.Duration
	FetchTimeout time.Duration
	Header       map[string]string
	Quiet        bool
	Output       string
	Progress     bool
}

func main() {
	app := kingpin.New("chaoSplit", "Measure how splitting one download into concurrent range requests affects latency.")
	opts := options{}
	app.Flag("config", "YAML experiment config file").Short('c').StringVar(&opts.ConfigFile)
	app.Flag("url", "Target url, must accept range queries").Short('u').StringVar(&opts.URL)
	app.Flag("split", "Split factor to test (repeatable)").Short('s').IntsVar(&opts.Splits)
	app.Flag("iterations", "Number of iterations").Short('n').IntVar(&opts.Iterations)
	var cooldown time.Duration
	var cooldownSet bool
	app.Flag("cooldown", "Pause between iterations (default 3s), 0 for none").IsSetByUser(&cooldownSet).DurationVar(&cooldown)
	app.Flag("timeout", "Timeout of each range-get, 0 means none").DurationVar(&opts.FetchTimeout)
	app.Flag("header", "Extra request header key=value (repeatable)").Short('H').StringMapVar(&opts.Header)
	app.Flag("quiet", "Do not print probe and range-get diagnostics").Short('q').BoolVar(&opts.Quiet)
	app.Flag("output", "Write YAML results to this file, - for stdout").Short('o').StringVar(&opts.Output)
	app.Flag("progress", "Show a progress bar").BoolVar(&opts.Progress)
	kingpin.MustParse(app.Parse(os.Args[1:]))
	if cooldownSet {
		opts.Cooldown = chaoSplit.Duration(cooldown)
	}

	log.SetHandler(cli.Default)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	config, err := buildConfig(opts)
	if err == nil {
		err = run(ctx, config, opts, os.Stdout)
	}
	if err != nil {
		log.WithError(err).Error(color.RedString("experiment failed"))
		stop()
		os.Exit(1)
	}
}

// buildConfig 默认配置 <- 配置文件 <- 命令行参数
func buildConfig(opts options) (chaoSplit.Config, error) {
	var config chaoSplit.Config
	if opts.ConfigFile != "" {
		var err error
		if config, err = chaoSplit.LoadConfig(opts.ConfigFile); err != nil {
			return config, err
		}
	}
	flags := chaoSplit.Config{
		URL:          opts.URL,
		Splits:       opts.Splits,
		Iterations:   opts.Iterations,
		Cooldown:     opts.Cooldown,
		FetchTimeout: opts.FetchTimeout,
		Header:       opts.Header,
		Quiet:        opts.Quiet,
	}
	utils.CopyValue(&config, &flags, utils.EmpValue)
	return config.WithDefaults(), nil
}

func run(ctx context.Context, config chaoSplit.Config, opts options, stdout io.Writer) error {
	config = config.WithDefaults()
	if opts.Progress {
		bar := progressbar.NewOptions64(
			int64(config.Iterations*len(config.Splits)),
			progressbar.OptionSetDescription("trials"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprint(os.Stderr, "\n")
			}),
			progressbar.OptionSetWriter(os.Stderr),
		)
		config.OnTrial = func(int, chaoSplit.TrialResult) {
			bar.Add(1)
		}
	}

	driver, err := chaoSplit.NewDriver(config)
	if err != nil {
		return err
	}
	config.Logger.Infof("Running split experiment on %s", color.BlueString(config.URL))
	table, err := driver.Run(ctx)
	if err != nil {
		return err
	}
	report, err := chaoSplit.Aggregate(table)
	if err != nil {
		return err
	}
	summary, err := chaoSplit.Summarize(table, report)
	if err != nil {
		return err
	}

	if opts.Output == "-" {
		return chaoSplit.WriteYAML(stdout, summary)
	}
	if err := chaoSplit.Render(stdout, summary); err != nil {
		return err
	}
	if opts.Output != "" {
		if err := yamlConfig.WriteConfigYaml(opts.Output, summary); err != nil {
			return errors.Wrapf(err, "write results %s", opts.Output)
		}
	}
	return nil
}
