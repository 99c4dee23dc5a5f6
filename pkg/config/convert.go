package config

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/huaijinli/wazuh/pkg/wzerrors"
	"github.com/huaijinli/wazuh/pkg/xmltree"
)

// Tag vocabulary of the configuration documents.
const (
	rootTag     = "ossec_config" // main document wrapper
	overrideTag = "agent_config" // group override block
	wodleTag    = "wodle"        // extension module wrapper, named by attribute
)

// Converter builds structured documents out of parsed configuration
// trees. A Converter is stateless across calls and safe for concurrent
// use; every conversion allocates its own output document.
type Converter struct {
	reg *Registry
	log zerolog.Logger
}

// NewConverter returns a converter using the given section registry.
// A nil registry selects the built-in catalogue.
func NewConverter(reg *Registry, log zerolog.Logger) *Converter {
	if reg == nil {
		reg = Sections()
	}
	return &Converter{reg: reg, log: log}
}

// Registry exposes the section catalogue the converter consults.
func (c *Converter) Registry() *Registry { return c.reg }

// convertBlock reads every section level node under one wrapper block
// and merges the resulting section documents into dst.
func (c *Converter) convertBlock(block *xmltree.Node, dst Map) error {
	for _, section := range block.Children {
		name := strings.ToLower(section.Tag)
		if name == wodleTag {
			attr, ok := section.Attr("name")
			if !ok {
				return wzerrors.Newf(wzerrors.KindMalformedInput, "wodle section without name attribute")
			}
			name = attr
		}

		sectionDoc := Map{}
		for _, opt := range section.Children {
			optName, value, err := c.readOption(name, opt)
			if err != nil {
				return err
			}
			// Sequence values are exploded into repeated insertions so
			// they accumulate under the list option rules. The remote
			// protocol list is the one value inserted whole.
			if seq, ok := value.(Sequence); ok && !(name == "remote" && optName == "protocol") {
				for _, element := range seq {
					c.insertOption(sectionDoc, name, optName, element)
				}
			} else {
				c.insertOption(sectionDoc, name, optName, value)
			}
		}
		c.insertSection(dst, name, sectionDoc)
	}
	return nil
}

// ConvertOssecConf assembles the main configuration document. Every
// top level ossec_config wrapper is processed in turn against the same
// accumulating document.
func (c *Converter) ConvertOssecConf(root *xmltree.Node) (Map, error) {
	out := Map{}
	for _, child := range root.Children {
		if strings.ToLower(child.Tag) == rootTag {
			if err := c.convertBlock(child, out); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
