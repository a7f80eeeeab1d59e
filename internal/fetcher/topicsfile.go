// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetcher

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// TopicsFile is the on-disk list of topics a scheduled run searches.
//
//	topics:
//	  - LLM agents
//	  - quantum error correction
type TopicsFile struct {
	Topics []string `yaml:"topics"`
}

// ReadTopicsFile loads topics from a YAML file. Blank entries are dropped
// and surrounding whitespace is trimmed; order and duplicates are kept.
func ReadTopicsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topics file: %w", err)
	}
	var tf TopicsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing topics file: %w", err)
	}

	topics := make([]string, 0, len(tf.Topics))
	for _, t := range tf.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	return topics, nil
}
