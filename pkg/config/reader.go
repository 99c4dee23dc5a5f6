package config

import (
	"regexp"
	"strings"

	"github.com/huaijinli/wazuh/pkg/wzerrors"
	"github.com/huaijinli/wazuh/pkg/xmltree"
)

// readFunc produces the value of one option node. Handlers exist for
// the section/option pairs the generic rule misparses; everything else
// goes through readGeneric.
type readFunc func(c *Converter, section string, n *xmltree.Node) (Value, error)

type optionKey struct {
	section string
	option  string
}

// sectionReaders apply to every option of a section.
var sectionReaders = map[string]readFunc{
	"open-scap": readScanProfiles,
}

// optionReaders apply to a single section/option pair. The map is
// populated in init to break the initialization cycle through
// readCommaSplitChildren, which calls back into readOption.
var optionReaders map[optionKey]readFunc

func init() {
	optionReaders = map[optionKey]readFunc{
		{"syscheck", "directories"}:     readDirectoryEntries,
		{"syscheck", "synchronization"}: readCommaSplitChildren,
		{"syscheck", "whodata"}:         readCommaSplitChildren,
		{"cluster", "nodes"}:            readChildTexts,
		{"sca", "policies"}:             readChildTexts,
		{"labels", "label"}:             readLabel,
		{"localfile", "query"}:          readRawQuery,
		{"remote", "protocol"}:          readProtocolList,
	}
}

// readOption reads one option node of a section and returns its name
// (the tag, lower cased) and value. The escape codec runs over the
// whole value before it is returned, wherever it came from.
func (c *Converter) readOption(section string, n *xmltree.Node) (string, Value, error) {
	name := strings.ToLower(n.Tag)

	read := readGeneric
	if fn, ok := sectionReaders[section]; ok {
		read = fn
	} else if fn, ok := optionReaders[optionKey{section, name}]; ok {
		read = fn
	}

	v, err := read(c, section, n)
	if err != nil {
		return name, nil, err
	}
	return name, DecodeValue(v), nil
}

// readGeneric is the default rule: attribute or child bearing nodes
// become maps (attributes first, then children read recursively under
// their own names); plain leaves become scalars. Text is never mixed
// into a map.
func readGeneric(c *Converter, _ string, n *xmltree.Node) (Value, error) {
	if !n.HasAttrs() && len(n.Children) == 0 {
		return Scalar(n.Text), nil
	}
	m := attrsToMap(n)
	for _, child := range n.Children {
		name, v, err := c.readOption(strings.ToLower(child.Tag), child)
		if err != nil {
			return nil, err
		}
		m[name] = v
	}
	return m, nil
}

// readScanProfiles handles every open-scap option: the attribute map is
// kept, and the text of the node and all its descendants is collected
// into an ordered "profiles" list. Attribute-less options are plain
// text.
func readScanProfiles(_ *Converter, _ string, n *xmltree.Node) (Value, error) {
	if !n.HasAttrs() {
		return Scalar(n.Text), nil
	}
	m := attrsToMap(n)
	var profiles Sequence
	for _, d := range n.Iter() {
		if text := strings.TrimSpace(d.Text); text != "" {
			profiles = append(profiles, Scalar(text))
		}
	}
	if len(profiles) > 0 {
		m["profiles"] = profiles
	}
	return m, nil
}

// readDirectoryEntries turns a syscheck directories option into one map
// per comma separated path, every map carrying an identical copy of the
// node's attributes plus the trimmed path.
func readDirectoryEntries(_ *Converter, _ string, n *xmltree.Node) (Value, error) {
	var entries Sequence
	if n.Text == "" {
		return entries, nil
	}
	for _, path := range strings.Split(n.Text, ",") {
		entry := attrsToMap(n)
		entry["path"] = Scalar(strings.TrimSpace(path))
		entries = append(entries, entry)
	}
	return entries, nil
}

// readCommaSplitChildren reads each child through the option reader and
// splits resulting scalars on commas. A comma in the first position
// does not split, matching the behavior of the existing tooling.
func readCommaSplitChildren(c *Converter, _ string, n *xmltree.Node) (Value, error) {
	m := Map{}
	for _, child := range n.Children {
		name, v, err := c.readOption(strings.ToLower(child.Tag), child)
		if err != nil {
			return nil, err
		}
		if s, ok := v.(Scalar); ok && strings.Index(string(s), ",") > 0 {
			var seq Sequence
			for _, part := range strings.Split(string(s), ",") {
				seq = append(seq, Scalar(part))
			}
			m[name] = seq
		} else {
			m[name] = v
		}
	}
	return m, nil
}

// readChildTexts collects the text of each direct child. Children are
// terminal here (cluster nodes, sca policies).
func readChildTexts(_ *Converter, _ string, n *xmltree.Node) (Value, error) {
	var seq Sequence
	for _, child := range n.Children {
		seq = append(seq, Scalar(child.Text))
	}
	return seq, nil
}

// readLabel maps a label option to {"value": text} plus one entry per
// attribute.
func readLabel(_ *Converter, _ string, n *xmltree.Node) (Value, error) {
	m := Map{"value": Scalar(n.Text)}
	for _, a := range n.Attrs {
		m[a.Name] = Scalar(a.Value)
	}
	return m, nil
}

var (
	indentPattern = regexp.MustCompile(`\n +`)
	queryPattern  = regexp.MustCompile(`<query>(.*)</query>`)
)

// readRawQuery extracts a logcollector query from the node's serialized
// form so that markup escaped inside the query survives. Backslash
// escaped brackets are restored first, then newlines and indentation
// are stripped and the text between the tag pair is taken.
func readRawQuery(_ *Converter, _ string, n *xmltree.Node) (Value, error) {
	s := xmltree.Serialize(n)
	s = strings.ReplaceAll(s, `\<`, "<")
	s = strings.ReplaceAll(s, `\>`, ">")
	s = strings.TrimSpace(indentPattern.ReplaceAllString(s, ""))
	m := queryPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, wzerrors.Newf(wzerrors.KindMalformedInput, "cannot extract localfile query from %q", s)
	}
	return Scalar(m[1]), nil
}

// readProtocolList splits the remote protocol text on commas into
// trimmed tokens. Unlike other sequence values this one is inserted
// atomically, not exploded into repeated insertions (see convertBlock).
func readProtocolList(_ *Converter, _ string, n *xmltree.Node) (Value, error) {
	var seq Sequence
	for _, part := range strings.Split(n.Text, ",") {
		seq = append(seq, Scalar(strings.TrimSpace(part)))
	}
	return seq, nil
}

func attrsToMap(n *xmltree.Node) Map {
	m := make(Map, len(n.Attrs))
	for _, a := range n.Attrs {
		m[a.Name] = Scalar(a.Value)
	}
	return m
}
