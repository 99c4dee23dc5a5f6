package config

// Legacy flat file readers. These formats predate the XML configuration
// and are plain line grammars: a scan per line, a regex per record
// shape. They are kept at the interface level only; none of the section
// merge machinery applies to them.

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/huaijinli/wazuh/pkg/wzerrors"
)

// RCLControl is one control block of a rule check list file.
type RCLControl struct {
	Name      string   `json:"name"`
	CIS       []string `json:"cis"`
	PCI       []string `json:"pci"`
	Condition string   `json:"condition,omitempty"`
	Reference string   `json:"reference,omitempty"`
	Checks    []string `json:"checks"`
}

// RCLFile is the parsed form of a rule check list (system_audit,
// windows_audit and friends).
type RCLFile struct {
	Vars     map[string]string `json:"vars"`
	Controls []RCLControl      `json:"controls"`
}

var (
	rclComment    = regexp.MustCompile(`^\s*#`)
	rclTitle      = regexp.MustCompile(`^\s*\[(.*)\]\s*\[(.*)\]\s*\[(.*)\]\s*`)
	rclNameGroups = regexp.MustCompile(`\{\w+:\s+\S+\s*\S*\}`)
	rclCheck      = regexp.MustCompile(`^\s*(\w:.+)`)
	rclVar        = regexp.MustCompile(`^\s*\$(\w+)=(.+)`)
)

// ReadRCL parses a rule check list file.
//
// Record shape per control:
//
//	[Application name {CIS: x} {PCI: y}] [any|all] [reference]
//	f:/path -> check;
func ReadRCL(path string) (*RCLFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wzerrors.New(wzerrors.KindResourceUnavailable, err)
	}
	defer f.Close()

	data := &RCLFile{Vars: map[string]string{}, Controls: []RCLControl{}}
	var current *RCLControl

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if rclComment.MatchString(line) {
			continue
		}

		if m := rclTitle.FindStringSubmatch(line); m != nil {
			if current != nil {
				data.Controls = append(data.Controls, *current)
			}
			name, condition, reference := m[1], m[2], m[3]

			control := RCLControl{CIS: []string{}, PCI: []string{}, Checks: []string{}}
			if end := strings.Index(name, "{"); end >= 0 {
				control.Name = strings.TrimSpace(name[:end])
			} else {
				control.Name = strings.TrimSpace(name)
			}
			for _, group := range rclNameGroups.FindAllString(name, -1) {
				// {CIS: 1.1.2 RHEL7} -> "1.1.2 RHEL7"
				value := strings.TrimSpace(strings.TrimSuffix(group[strings.LastIndex(group, ":")+1:], "}"))
				switch {
				case strings.Contains(group, "CIS"):
					control.CIS = append(control.CIS, value)
				case strings.Contains(group, "PCI"):
					control.PCI = append(control.PCI, value)
				}
			}
			control.Condition = condition
			control.Reference = reference
			current = &control
			continue
		}

		if m := rclCheck.FindStringSubmatch(line); m != nil {
			if current != nil {
				current.Checks = append(current.Checks, m[1])
			}
			continue
		}

		if m := rclVar.FindStringSubmatch(line); m != nil {
			data.Vars[m[1]] = m[2]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, wzerrors.New(wzerrors.KindMalformedInput, err)
	}
	if current != nil {
		data.Controls = append(data.Controls, *current)
	}
	return data, nil
}

// RootkitSignature is one entry of a rootkit files or trojans list.
type RootkitSignature struct {
	Filename    string `json:"filename"`
	Name        string `json:"name"`
	Link        string `json:"link,omitempty"`
	Description string `json:"description,omitempty"`
}

var (
	rootkitFileCheck   = regexp.MustCompile(`^(.+)!(.+)::(.+)`)
	rootkitTrojanCheck = regexp.MustCompile(`^(.+)!(.+)!(.+)`)
	rootkitBinaryCheck = regexp.MustCompile(`^(.+)!(.+)!`)
)

// ReadRootkitFiles parses a rootkit files list
// ("file_name ! Name ::Link").
func ReadRootkitFiles(path string) ([]RootkitSignature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wzerrors.New(wzerrors.KindResourceUnavailable, err)
	}
	defer f.Close()

	var data []RootkitSignature
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if rclComment.MatchString(line) {
			continue
		}
		if m := rootkitFileCheck.FindStringSubmatch(line); m != nil {
			data = append(data, RootkitSignature{
				Filename: strings.TrimSpace(m[1]),
				Name:     strings.TrimSpace(m[2]),
				Link:     strings.TrimSpace(m[3]),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, wzerrors.New(wzerrors.KindMalformedInput, err)
	}
	return data, nil
}

// ReadRootkitTrojans parses a rootkit trojans list
// ("file_name !string_to_search!Description", description optional).
func ReadRootkitTrojans(path string) ([]RootkitSignature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wzerrors.New(wzerrors.KindResourceUnavailable, err)
	}
	defer f.Close()

	var data []RootkitSignature
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if rclComment.MatchString(line) {
			continue
		}
		if m := rootkitTrojanCheck.FindStringSubmatch(line); m != nil {
			data = append(data, RootkitSignature{
				Filename:    strings.TrimSpace(m[1]),
				Name:        strings.TrimSpace(m[2]),
				Description: strings.TrimSpace(m[3]),
			})
		} else if m := rootkitBinaryCheck.FindStringSubmatch(line); m != nil {
			data = append(data, RootkitSignature{
				Filename: strings.TrimSpace(m[1]),
				Name:     strings.TrimSpace(m[2]),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, wzerrors.New(wzerrors.KindMalformedInput, err)
	}
	return data, nil
}

// ReadCommandList returns the lines of a plain command list file
// (ar.conf) stripped of their newline.
func ReadCommandList(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, wzerrors.New(wzerrors.KindResourceUnavailable, err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	return lines, nil
}
