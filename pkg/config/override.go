package config

import (
	"maps"
	"strings"

	"github.com/huaijinli/wazuh/pkg/xmltree"
)

// AgentGroupConfig is one group override document: the configuration
// that applies to agents matching the filter attribute set of its
// agent_config block (os, name, profile, ...).
type AgentGroupConfig struct {
	Filters map[string]string `json:"filters"`
	Config  Map               `json:"config"`
}

// ConvertAgentConf assembles the group override documents from an
// agent.conf tree. agent_config blocks are picked up at any depth; two
// blocks with exactly equal filter maps merge into a single entry under
// the usual section rules instead of producing duplicates.
func (c *Converter) ConvertAgentConf(root *xmltree.Node) ([]AgentGroupConfig, error) {
	entries := []AgentGroupConfig{}

	for _, block := range root.Iter() {
		if strings.ToLower(block.Tag) != overrideTag {
			continue
		}

		filters := make(map[string]string, len(block.Attrs))
		for _, a := range block.Attrs {
			filters[a.Name] = a.Value
		}

		previous := -1
		for i, entry := range entries {
			if maps.Equal(entry.Filters, filters) {
				previous = i
				break
			}
		}

		if previous >= 0 {
			if err := c.convertBlock(block, entries[previous].Config); err != nil {
				return nil, err
			}
			continue
		}

		cfg := Map{}
		if err := c.convertBlock(block, cfg); err != nil {
			return nil, err
		}
		entries = append(entries, AgentGroupConfig{Filters: filters, Config: cfg})
	}

	return entries, nil
}
