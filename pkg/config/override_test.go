package config

import (
	"reflect"
	"testing"

	"github.com/huaijinli/wazuh/pkg/xmltree"
)

func convertAgentConf(t *testing.T, doc string) []AgentGroupConfig {
	t.Helper()
	root, err := xmltree.ParseString(doc)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	entries, err := testConverter().ConvertAgentConf(root)
	if err != nil {
		t.Fatalf("convert document: %v", err)
	}
	return entries
}

func TestConvertAgentConf_NoFilters(t *testing.T) {
	entries := convertAgentConf(t, `
<agent_config>
  <localfile>
    <location>/var/log/my.log</location>
  </localfile>
</agent_config>`)

	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if len(entries[0].Filters) != 0 {
		t.Errorf("expected empty filter set, got %v", entries[0].Filters)
	}
	if _, ok := entries[0].Config["localfile"].(Sequence); !ok {
		t.Errorf("localfile missing from converted block: %v", entries[0].Config)
	}
}

func TestConvertAgentConf_SplitsByFilters(t *testing.T) {
	entries := convertAgentConf(t, `
<agent_config os="Linux">
  <syscheck><frequency>43200</frequency></syscheck>
</agent_config>
<agent_config os="Windows" profile="server">
  <syscheck><frequency>86400</frequency></syscheck>
</agent_config>`)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !reflect.DeepEqual(entries[0].Filters, map[string]string{"os": "Linux"}) {
		t.Errorf("first filter set mismatch: %v", entries[0].Filters)
	}
	if !reflect.DeepEqual(entries[1].Filters, map[string]string{"os": "Windows", "profile": "server"}) {
		t.Errorf("second filter set mismatch: %v", entries[1].Filters)
	}
	if entries[0].Config["syscheck"].(Map)["frequency"] != Scalar("43200") {
		t.Errorf("first config mismatch: %v", entries[0].Config)
	}
}

func TestConvertAgentConf_MergesEqualFilters(t *testing.T) {
	entries := convertAgentConf(t, `
<agent_config os="Linux">
  <localfile><location>/var/log/a.log</location></localfile>
</agent_config>
<agent_config os="Linux">
  <localfile><location>/var/log/b.log</location></localfile>
</agent_config>`)

	if len(entries) != 1 {
		t.Fatalf("blocks with equal filters should merge, got %d entries", len(entries))
	}
	seq, ok := entries[0].Config["localfile"].(Sequence)
	if !ok || len(seq) != 2 {
		t.Fatalf("expected 2 merged localfile entries, got %v", entries[0].Config["localfile"])
	}
	if seq[0].(Map)["location"] != Scalar("/var/log/a.log") || seq[1].(Map)["location"] != Scalar("/var/log/b.log") {
		t.Errorf("merged entries out of order: %v", seq)
	}
}

func TestConvertAgentConf_AttributeOrderIrrelevant(t *testing.T) {
	entries := convertAgentConf(t, `
<agent_config os="Linux" profile="web">
  <syscheck><frequency>1</frequency></syscheck>
</agent_config>
<agent_config profile="web" os="Linux">
  <syscheck><frequency>2</frequency></syscheck>
</agent_config>`)

	if len(entries) != 1 {
		t.Fatalf("filter equality should ignore attribute order, got %d entries", len(entries))
	}
	if entries[0].Config["syscheck"].(Map)["frequency"] != Scalar("2") {
		t.Errorf("merge should apply the usual section rules: %v", entries[0].Config)
	}
}

func TestConvertAgentConf_IgnoresOtherElements(t *testing.T) {
	entries := convertAgentConf(t, `<ossec_config><global><logall>yes</logall></global></ossec_config>`)
	if len(entries) != 0 {
		t.Errorf("only agent_config blocks should convert, got %v", entries)
	}
}
