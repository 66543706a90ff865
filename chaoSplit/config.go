package chaoSplit

import (
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/pkg/errors"

	"github.com/bzsome/ChaoGoSplit/utils"
	"github.com/bzsome/ChaoGoSplit/yamlConfig"
)

// DefaultURL 一张大约11MB的图片
const DefaultURL = "http://northwestcoast.ca/wp-content/uploads/2014/07/" +
	"Matier-and-Stonecrop-Glacier-Joffre-Provincial-Park-large.jpg"

// DefaultCooldown 两轮迭代之间默认休息的时间
const DefaultCooldown = 3 * time.Second

//默认的实验配置
var DefaultConfig = Config{
	URL:        DefaultURL,
	Splits:     []int{1, 4, 10, 16, 25, 50, 100},
	Iterations: 1,
	Cooldown:   Duration(DefaultCooldown),
	Header: map[string]string{
		"User-Agent": "ChaoGoSplit/1.0",
	},
	Logger: log.Log,
}

type Config struct {
	URL        string            `yaml:"url"`
	Splits     []int             `yaml:"splits,flow"` //要测试的分段数
	Iterations int               `yaml:"iterations"`
	Cooldown   *time.Duration    `yaml:"cooldown"` //两轮迭代之间的休息时间, nil使用默认值, 0不休息
	Header     map[string]string `yaml:"header"` //和默认header合并, 同名时覆盖默认值

	// FetchTimeout 每个分段请求的超时, 0表示不超时
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// Quiet 为true时不输出探测和分段的诊断信息
	Quiet bool `yaml:"quiet"`

	Client utils.Doer    `yaml:"-"`
	Logger log.Interface `yaml:"-"`

	// OnTrial 每轮迭代结束后对每个结果回调一次
	OnTrial func(iteration int, trial TrialResult) `yaml:"-"`
}

// Duration 返回d的指针, 用于设置Config.Cooldown
func Duration(d time.Duration) *time.Duration {
	return &d
}

// WithDefaults 返回副本, 没有指定的配置从DefaultConfig中读取
func (c Config) WithDefaults() Config {
	header := mergeHeader(DefaultConfig.Header, c.Header)
	utils.CopyValue2(&c, &DefaultConfig, utils.EmpValue)
	c.Header = header
	if c.Cooldown != nil {
		c.Cooldown = Duration(*c.Cooldown)
	}
	if c.Client == nil {
		c.Client = utils.BuildHTTPClient()
	}
	return c
}

// CooldownDuration nil时返回DefaultCooldown
func (c Config) CooldownDuration() time.Duration {
	if c.Cooldown == nil {
		return DefaultCooldown
	}
	return *c.Cooldown
}

// mergeHeader 返回新map, key按http规范化, override中的值优先
func mergeHeader(defaults, override map[string]string) map[string]string {
	merged := make(map[string]string, len(defaults)+len(override))
	for k, v := range defaults {
		merged[http.CanonicalHeaderKey(k)] = v
	}
	for k, v := range override {
		merged[http.CanonicalHeaderKey(k)] = v
	}
	return merged
}

func (c Config) Validate() error {
	if !strings.HasPrefix(c.URL, "http://") && !strings.HasPrefix(c.URL, "https://") {
		return errors.Wrapf(ErrInvalidConfig, "url must be http(s), got %q", c.URL)
	}
	if len(c.Splits) == 0 {
		return errors.Wrap(ErrInvalidConfig, "no split factors")
	}
	seen := make(map[int]bool, len(c.Splits))
	for _, split := range c.Splits {
		if split < 1 {
			return errors.Wrapf(ErrInvalidConfig, "split factor must be >= 1, got %d", split)
		}
		if seen[split] {
			return errors.Wrapf(ErrInvalidConfig, "duplicate split factor %d", split)
		}
		seen[split] = true
	}
	if c.Iterations < 1 {
		return errors.Wrapf(ErrInvalidConfig, "iterations must be >= 1, got %d", c.Iterations)
	}
	if c.CooldownDuration() < 0 || c.FetchTimeout < 0 {
		return errors.Wrap(ErrInvalidConfig, "durations must not be negative")
	}
	return nil
}

// LoadConfig 读取yaml配置文件, 文件中没有的字段保持零值
func LoadConfig(fileName string) (Config, error) {
	var c Config
	if err := yamlConfig.GetConfigYaml(fileName, &c); err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", fileName)
	}
	return c, nil
}
