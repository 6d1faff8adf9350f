package config

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/san-kum/inetmap/internal/atlas"
	"github.com/san-kum/inetmap/internal/join"
	"github.com/san-kum/inetmap/internal/loader"
	"github.com/san-kum/inetmap/internal/player"
	"github.com/san-kum/inetmap/internal/scale"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	DefaultGeometry     = "data/world_countries.json"
	DefaultObservations = "data/internet_usage.csv"
	DefaultPreset       = "classic"
)

type Config struct {
	Geometry     string            `yaml:"geometry"`
	Observations string            `yaml:"observations"`
	Timing       TimingConfig      `yaml:"timing"`
	Scale        ScaleConfig       `yaml:"scale"`
	NameFixes    map[string]string `yaml:"name_fixes"`
	Duplicates   string            `yaml:"duplicates"`
	Text         TextConfig        `yaml:"text"`
	Log          LogConfig         `yaml:"log"`
}

type TimingConfig struct {
	IntroDelay     time.Duration `yaml:"intro_delay"`
	Tick           time.Duration `yaml:"tick"`
	FillTransition time.Duration `yaml:"fill_transition"`
	HoverIn        time.Duration `yaml:"hover_in"`
	HoverOut       time.Duration `yaml:"hover_out"`
}

type ScaleConfig struct {
	Exponent float64   `yaml:"exponent"`
	Low      string    `yaml:"low"`
	High     string    `yaml:"high"`
	NoData   string    `yaml:"no_data"`
	Legend   []float64 `yaml:"legend"`
}

type TextConfig struct {
	Intro       string `yaml:"intro"`
	Heading     string `yaml:"heading"`
	Hint        string `yaml:"hint"`
	Attribution string `yaml:"attribution"`
	NoData      string `yaml:"no_data"`
}

// LogConfig selects the zap encoder and level. File, when set, receives all
// output instead of stderr.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

func DefaultConfig() *Config {
	text := player.DefaultText()
	return &Config{
		Geometry:     DefaultGeometry,
		Observations: DefaultObservations,
		Timing:       *GetPreset(DefaultPreset),
		Scale: ScaleConfig{
			Exponent: scale.DefaultExponent,
			Low:      scale.DefaultLow,
			High:     scale.DefaultHigh,
			NoData:   scale.DefaultNoData,
			Legend:   append([]float64(nil), scale.LegendDomain...),
		},
		NameFixes:  atlas.DefaultNames(),
		Duplicates: string(join.LastWins),
		Text: TextConfig{
			Intro:       text.Intro,
			Heading:     text.Heading,
			Hint:        text.Hint,
			Attribution: text.Attribution,
			NoData:      text.NoData,
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "config: read file")
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return eris.Wrap(err, "config: marshal")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return eris.Wrap(err, "config: write file")
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Timing.Tick <= 0 {
		return eris.Errorf("config: tick must be positive, got %s", c.Timing.Tick)
	}
	for name, d := range map[string]time.Duration{
		"intro_delay":     c.Timing.IntroDelay,
		"fill_transition": c.Timing.FillTransition,
		"hover_in":        c.Timing.HoverIn,
		"hover_out":       c.Timing.HoverOut,
	} {
		if d < 0 {
			return eris.Errorf("config: %s must not be negative, got %s", name, d)
		}
	}
	if c.Scale.Exponent < 0 {
		return eris.Errorf("config: scale exponent must not be negative, got %g", c.Scale.Exponent)
	}
	if _, err := join.ParsePolicy(c.Duplicates); err != nil {
		return eris.Wrap(err, "config: duplicates")
	}
	if _, err := c.ScaleOptions(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Sources() loader.Sources {
	return loader.Sources{Geometry: c.Geometry, Observations: c.Observations}
}

func (c *Config) LoaderOptions() (loader.Options, error) {
	policy, err := join.ParsePolicy(c.Duplicates)
	if err != nil {
		return loader.Options{}, eris.Wrap(err, "config: duplicates")
	}
	names := atlas.NameTable{}
	for k, v := range c.NameFixes {
		names[k] = v
	}
	return loader.Options{Names: names, Duplicates: policy}, nil
}

func (c *Config) ScaleOptions() (scale.Options, error) {
	opts, err := scale.ParseOptions(c.Scale.Exponent, c.Scale.Low, c.Scale.High, c.Scale.NoData)
	if err != nil {
		return scale.Options{}, eris.Wrap(err, "config: scale colors")
	}
	return opts, nil
}

// PlayerOptions fills unset fields from player.DefaultOptions.
func (c *Config) PlayerOptions() player.Options {
	opts := player.DefaultOptions()
	opts.IntroDelay = c.Timing.IntroDelay
	if c.Timing.Tick > 0 {
		opts.Tick = c.Timing.Tick
	}
	opts.FillTransition = c.Timing.FillTransition
	opts.HoverIn = c.Timing.HoverIn
	opts.HoverOut = c.Timing.HoverOut
	if len(c.Scale.Legend) > 0 {
		opts.LegendDomain = c.Scale.Legend
	}

	t := &opts.Text
	for _, f := range []struct {
		src string
		dst *string
	}{
		{c.Text.Intro, &t.Intro},
		{c.Text.Heading, &t.Heading},
		{c.Text.Hint, &t.Hint},
		{c.Text.Attribution, &t.Attribution},
		{c.Text.NoData, &t.NoData},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
	return opts
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	lvl := cfg.Level
	if lvl == "" {
		lvl = "info"
	}
	level, err := zapcore.ParseLevel(lvl)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
