package config

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// templateEntry is one documented key of the default config file.
type templateEntry struct {
	key     string
	value   string
	tag     string
	comment string
}

func templateEntries(c Config) []templateEntry {
	return []templateEntry{
		{"tab_stop", strconv.Itoa(c.TabStop), "!!int", "Columns per tab stop when rendering (1-32)"},
		{"quit_times", strconv.Itoa(c.QuitTimes), "!!int", "Extra Ctrl-Q presses needed to quit with unsaved changes"},
		{"message_timeout", c.MessageTimeout.String(), "!!str", "How long status messages stay visible"},
		{"watch", strconv.FormatBool(c.Watch), "!!bool", "Warn when the open file changes on disk"},
		{"watch_debounce", c.WatchDebounce.String(), "!!str", "Quiet period before a disk change is reported"},
		{"log_file", c.LogFile, "!!str", "Debug log path, written only with --debug"},
		{"log_level", c.LogLevel, "!!str", "Minimum debug log level: debug, info, warn or error"},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() (string, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range templateEntries(Defaults()) {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.key, HeadComment: e.comment},
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.value, Tag: e.tag},
		)
	}
	doc := &yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: "vertext configuration",
		Content:     []*yaml.Node{root},
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	return buf.String(), nil
}
