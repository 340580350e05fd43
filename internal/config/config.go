// Package config loads categorization rule sets.
//
// A rule set is read by viper from a YAML, TOML or JSON file. When no file
// is given, MOLCOVER_RULES is consulted, and failing that the embedded
// default rule set is used.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix scopes environment overrides (MOLCOVER_RULES, ...).
const EnvPrefix = "molcover"

//go:embed default_rules.yaml
var defaultRules []byte

var ErrNoRules = errors.New("rule set defines no rules")

// Rule maps one category to the SMILES fragments that signal it.
type Rule struct {
	ID       string   `mapstructure:"id"`
	Patterns []string `mapstructure:"patterns"`
	Note     string   `mapstructure:"note"`
}

// RuleSet is the decoded configuration file.
type RuleSet struct {
	Name  string `mapstructure:"name"`
	Rules []Rule `mapstructure:"rules"`
	// Source is the file the rules were read from, "embedded" for defaults.
	Source string `mapstructure:"-"`
}

// LoadRules reads a rule set from path, from $MOLCOVER_RULES, or from the
// embedded defaults, in that order of preference.
func LoadRules(path string) (*RuleSet, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	_ = v.BindEnv("rules_file", "MOLCOVER_RULES")

	if path == "" {
		path = v.GetString("rules_file")
	}

	source := path
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read rules %s: %w", path, err)
		}
	} else {
		source = "embedded"
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewReader(defaultRules)); err != nil {
			return nil, fmt.Errorf("read embedded rules: %w", err)
		}
	}

	var rs RuleSet
	if err := v.Unmarshal(&rs); err != nil {
		return nil, fmt.Errorf("decode rules %s: %w", source, err)
	}
	rs.Source = source
	if err := rs.Validate(); err != nil {
		return nil, fmt.Errorf("rules %s: %w", source, err)
	}
	return &rs, nil
}

// Validate checks that rules are non-empty, ids unique and every rule has
// at least one non-blank pattern.
func (rs *RuleSet) Validate() error {
	if len(rs.Rules) == 0 {
		return ErrNoRules
	}
	seen := make(map[string]struct{}, len(rs.Rules))
	for i, r := range rs.Rules {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return fmt.Errorf("rule %d: missing id", i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("rule %q: duplicate id", id)
		}
		seen[id] = struct{}{}
		n := 0
		for _, p := range r.Patterns {
			if strings.TrimSpace(p) != "" {
				n++
			}
		}
		if n == 0 {
			return fmt.Errorf("rule %q: no patterns", id)
		}
	}
	return nil
}
