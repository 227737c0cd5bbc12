package config

import "strings"

type Feature int

const (
	FeatFoldConstCond Feature = iota
	FeatCount
)

type Warning int

const (
	WarnUnknownNode Warning = iota
	WarnExtra
	WarnCount
)

type Info struct {
	Name        string
	Enabled     bool
	Description string
}

type Config struct {
	Features   map[Feature]Info
	Warnings   map[Warning]Info
	FeatureMap map[string]Feature
	WarningMap map[string]Warning
}

func NewConfig() *Config {
	cfg := &Config{
		FeatureMap: make(map[string]Feature),
		WarningMap: make(map[string]Warning),
	}

	cfg.Features = map[Feature]Info{
		FeatFoldConstCond: {"fold-const-cond", true, "Fold short-circuit operators whose left operand is a deciding constant."},
	}
	cfg.Warnings = map[Warning]Info{
		WarnUnknownNode: {"unknown-node", true, "Warn when an AST node has no registered translator and is skipped."},
		WarnExtra:       {"extra", true, "Enable extra miscellaneous warnings."},
	}

	for ft, info := range cfg.Features {
		cfg.FeatureMap[info.Name] = ft
	}
	for wt, info := range cfg.Warnings {
		cfg.WarningMap[info.Name] = wt
	}
	return cfg
}

func (c *Config) SetFeature(ft Feature, enabled bool) {
	if info, ok := c.Features[ft]; ok {
		info.Enabled = enabled
		c.Features[ft] = info
	}
}

func (c *Config) IsFeatureEnabled(ft Feature) bool { return c.Features[ft].Enabled }

func (c *Config) SetWarning(wt Warning, enabled bool) {
	if info, ok := c.Warnings[wt]; ok {
		info.Enabled = enabled
		c.Warnings[wt] = info
	}
}

func (c *Config) IsWarningEnabled(wt Warning) bool { return c.Warnings[wt].Enabled }

func (c *Config) WarningName(wt Warning) string { return c.Warnings[wt].Name }

// ApplyFlag interprets a -W.../-F... style toggle ("Wunknown-node",
// "Wno-extra", "Ffold-const-cond", "Wall"). Unrecognized names are ignored.
func (c *Config) ApplyFlag(flag string) {
	trimmed := strings.TrimPrefix(flag, "-")
	isNo := strings.HasPrefix(trimmed, "Wno-") || strings.HasPrefix(trimmed, "Fno-")
	enable := !isNo

	var name string
	isWarning := true
	switch {
	case strings.HasPrefix(trimmed, "W"):
		name = strings.TrimPrefix(trimmed, "W")
	case strings.HasPrefix(trimmed, "F"):
		name = strings.TrimPrefix(trimmed, "F")
		isWarning = false
	default:
		name = trimmed
	}
	if isNo {
		name = strings.TrimPrefix(name, "no-")
	}

	if name == "all" && isWarning {
		for i := Warning(0); i < WarnCount; i++ {
			c.SetWarning(i, enable)
		}
		return
	}

	if isWarning {
		if w, ok := c.WarningMap[name]; ok {
			c.SetWarning(w, enable)
		}
	} else {
		if f, ok := c.FeatureMap[name]; ok {
			c.SetFeature(f, enable)
		}
	}
}
