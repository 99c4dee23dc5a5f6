package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/huaijinli/wazuh/pkg/wzerrors"
	"github.com/huaijinli/wazuh/pkg/xmltree"
)

// GetOssecConf returns the main configuration document stored at path,
// optionally narrowed to one section and one field within it.
func (c *Converter) GetOssecConf(path, section, field string) (Map, error) {
	root, err := xmltree.LoadFile(path)
	if err != nil {
		return nil, wzerrors.New(wzerrors.KindMalformedInput, err)
	}
	data, err := c.ConvertOssecConf(root)
	if err != nil {
		return nil, err
	}
	return c.Narrow(data, section, field)
}

// Narrow filters a converted document down to one section and,
// optionally, one field within it. Duplicate sections project the field
// out of every entry.
func (c *Converter) Narrow(data Map, section, field string) (Map, error) {
	if section == "" {
		return data, nil
	}

	sectionValue, ok := data[section]
	if !ok {
		if _, known := c.reg.Lookup(section); !known {
			return nil, wzerrors.Newf(wzerrors.KindUnknownSection, "invalid section: %s", section)
		}
		return nil, wzerrors.Newf(wzerrors.KindUnknownSection, "section %s not present in configuration", section)
	}
	data = Map{section: sectionValue}

	if field == "" {
		return data, nil
	}

	switch v := sectionValue.(type) {
	case Sequence:
		// Duplicate sections project the field out of every entry.
		projected := make(Sequence, 0, len(v))
		for _, item := range v {
			m, ok := item.(Map)
			if !ok {
				return nil, wzerrors.Newf(wzerrors.KindUnknownField, "invalid field %q in section %q", field, section)
			}
			fv, ok := m[field]
			if !ok {
				return nil, wzerrors.Newf(wzerrors.KindUnknownField, "invalid field %q in section %q", field, section)
			}
			projected = append(projected, Map{field: fv})
		}
		return Map{section: projected}, nil
	case Map:
		fv, ok := v[field]
		if !ok {
			return nil, wzerrors.Newf(wzerrors.KindUnknownField, "invalid field %q in section %q", field, section)
		}
		return Map{section: Map{field: fv}}, nil
	default:
		return nil, wzerrors.Newf(wzerrors.KindUnknownField, "invalid field %q in section %q", field, section)
	}
}

// GetAgentConf returns the group override documents of a group's
// agent.conf.
func (c *Converter) GetAgentConf(paths Paths, group, filename string) ([]AgentGroupConfig, error) {
	if filename == "" {
		filename = "agent.conf"
	}
	if _, err := os.Stat(paths.GroupDir(group)); err != nil {
		return nil, wzerrors.Newf(wzerrors.KindResourceUnavailable, "group %q not found", group)
	}
	confPath := filepath.Join(paths.GroupDir(group), filename)
	if _, err := os.Stat(confPath); err != nil {
		return nil, wzerrors.Newf(wzerrors.KindResourceUnavailable, "%s does not exist or cannot be read", confPath)
	}

	root, err := xmltree.LoadFile(confPath)
	if err != nil {
		return nil, wzerrors.New(wzerrors.KindMalformedInput, err)
	}
	entries, err := c.ConvertAgentConf(root)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// GetAgentConfRaw returns the unparsed agent.conf text of a group, for
// callers that want the source markup rather than the converted form.
func GetAgentConfRaw(paths Paths, group, filename string) (string, error) {
	if filename == "" {
		filename = "agent.conf"
	}
	if _, err := os.Stat(paths.GroupDir(group)); err != nil {
		return "", wzerrors.Newf(wzerrors.KindResourceUnavailable, "group %q not found", group)
	}
	raw, err := os.ReadFile(filepath.Join(paths.GroupDir(group), filename))
	if err != nil {
		return "", wzerrors.New(wzerrors.KindResourceUnavailable, err)
	}
	return string(raw), nil
}

// FileConfType selects the parser used by GetFileConf.
type FileConfType string

const (
	FileConf           FileConfType = "conf"
	FileRootkitFiles   FileConfType = "rootkit_files"
	FileRootkitTrojans FileConfType = "rootkit_trojans"
	FileRCL            FileConfType = "rcl"
)

// GetFileConf parses one shared group file according to its type, or by
// well known filename when no type is given.
func (c *Converter) GetFileConf(paths Paths, group, filename string, typeConf FileConfType) (any, error) {
	if _, err := os.Stat(paths.GroupDir(group)); err != nil {
		return nil, wzerrors.Newf(wzerrors.KindResourceUnavailable, "group %q not found", group)
	}
	dir := paths.GroupDir(group)
	if filename == "ar.conf" {
		dir = paths.SharedDir()
	}
	filePath := filepath.Join(dir, filename)
	if _, err := os.Stat(filePath); err != nil {
		return nil, wzerrors.Newf(wzerrors.KindResourceUnavailable, "%s does not exist or cannot be read", filePath)
	}

	switch typeConf {
	case FileConf:
		return c.GetAgentConf(paths, group, filename)
	case FileRootkitFiles:
		return ReadRootkitFiles(filePath)
	case FileRootkitTrojans:
		return ReadRootkitTrojans(filePath)
	case FileRCL:
		return ReadRCL(filePath)
	case "":
		switch filename {
		case "agent.conf":
			return c.GetAgentConf(paths, group, filename)
		case "rootkit_files.txt":
			return ReadRootkitFiles(filePath)
		case "rootkit_trojans.txt":
			return ReadRootkitTrojans(filePath)
		case "ar.conf":
			return ReadCommandList(filePath)
		default:
			return ReadRCL(filePath)
		}
	default:
		return nil, wzerrors.Newf(wzerrors.KindMalformedInput,
			"invalid file type %q, valid types: conf, rootkit_files, rootkit_trojans, rcl", typeConf)
	}
}

// WriteOssecConf replaces the main configuration file with the provided
// content.
func WriteOssecConf(paths Paths, content string) error {
	if err := os.WriteFile(paths.OssecConf(), []byte(content), 0o640); err != nil {
		return wzerrors.New(wzerrors.KindResourceUnavailable, fmt.Errorf("update ossec.conf: %w", err))
	}
	return nil
}

// CutSlice applies offset/limit pagination to a converted slice. A
// negative limit returns everything past the offset.
func CutSlice[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit < 0 || limit >= len(items) {
		return items
	}
	return items[:limit]
}
