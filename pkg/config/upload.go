package config

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/huaijinli/wazuh/pkg/wzerrors"
)

// UploadGroupFile validates and installs a shared group file submitted
// by a remote caller. Only agent.conf may be updated this way.
func UploadGroupFile(paths Paths, log zerolog.Logger, group, fileName, content string) (string, error) {
	if _, err := os.Stat(paths.GroupDir(group)); err != nil {
		return "", wzerrors.Newf(wzerrors.KindResourceUnavailable, "group %q not found", group)
	}
	if fileName != "agent.conf" {
		return "", wzerrors.Newf(wzerrors.KindMalformedInput,
			"remote group file updates are only available for agent.conf")
	}
	if len(content) == 0 {
		return "", wzerrors.Newf(wzerrors.KindMalformedInput, "empty files are not supported")
	}
	return UploadGroupConfiguration(paths, log, group, content)
}

// UploadGroupConfiguration stages the submitted agent.conf text through
// the escape codec and the generic pretty printer, runs the external
// syntax validator over it, and atomically replaces the group's file on
// success. The staging file is removed on every failure path.
func UploadGroupConfiguration(paths Paths, log zerolog.Logger, group, content string) (string, error) {
	if _, err := os.Stat(paths.GroupDir(group)); err != nil {
		return "", wzerrors.Newf(wzerrors.KindResourceUnavailable, "group %q not found", group)
	}

	pretty, err := encodeAndPrettify(content)
	if err != nil {
		return "", wzerrors.New(wzerrors.KindMalformedInput, err)
	}

	tmp, err := os.CreateTemp(paths.TmpDir(), "api_tmp_file_*.xml")
	if err != nil {
		return "", wzerrors.New(wzerrors.KindResourceUnavailable, err)
	}
	tmpPath := tmp.Name()
	installed := false
	defer func() {
		if !installed {
			os.Remove(tmpPath)
		}
	}()
	if _, err := tmp.WriteString(pretty); err != nil {
		tmp.Close()
		return "", wzerrors.New(wzerrors.KindResourceUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return "", wzerrors.New(wzerrors.KindResourceUnavailable, err)
	}

	if err := runValidator(paths, tmpPath); err != nil {
		return "", err
	}

	target := filepath.Join(paths.GroupDir(group), "agent.conf")
	if err := os.Chmod(tmpPath, 0o660); err != nil {
		return "", wzerrors.New(wzerrors.KindResourceUnavailable, fmt.Errorf("set file mode: %w", err))
	}
	if paths.Uid >= 0 && paths.Gid >= 0 {
		if err := os.Chown(tmpPath, paths.Uid, paths.Gid); err != nil {
			return "", wzerrors.New(wzerrors.KindResourceUnavailable, fmt.Errorf("set file ownership: %w", err))
		}
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return "", wzerrors.New(wzerrors.KindResourceUnavailable, fmt.Errorf("move configuration into place: %w", err))
	}
	installed = true

	log.Info().Str("group", group).Msg("agent configuration updated")
	return "Agent configuration was successfully updated", nil
}

// validatorDiagnostic extracts the human readable part of the
// validator's timestamped error lines.
var validatorDiagnostic = regexp.MustCompile(
	`\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} verify-agent-conf: ERROR: \(\d+\): ([\w /_\-.':]+)`)

// runValidator executes the external syntax validator and classifies
// its failures: extracted diagnostics for semantic rejections, a
// resource error when the binary itself cannot run.
func runValidator(paths Paths, file string) error {
	out, err := exec.Command(paths.ValidatorBin(), "-f", file).CombinedOutput()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return wzerrors.New(wzerrors.KindResourceUnavailable, fmt.Errorf("run syntax validator: %w", err))
	}
	matches := validatorDiagnostic.FindAllStringSubmatch(string(out), -1)
	if len(matches) == 0 {
		return wzerrors.Newf(wzerrors.KindValidation, "verify-agent-conf failed: %s", strings.TrimSpace(string(out)))
	}
	diags := make([]string, 0, len(matches))
	for _, m := range matches {
		diags = append(diags, m[1])
	}
	return wzerrors.Newf(wzerrors.KindValidation, "%s", strings.Join(diags, " "))
}

// printerEntityReverter undoes the entity rewriting the generic XML
// printer applies on its own; the placeholder tokens are restored right
// after, giving back the submitted escape sequences.
var printerEntityReverter = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#34;", `"`,
	"&#39;", "'",
)

func encodeAndPrettify(content string) (string, error) {
	pretty, err := prettifyXML(EncodeEntities(content))
	if err != nil {
		return "", err
	}
	return DecodeEntities(printerEntityReverter.Replace(pretty)), nil
}

// prettifyXML reindents a document fragment. The fragment may hold
// several top level elements, so it is wrapped before decoding and the
// wrapper is dropped again on output.
func prettifyXML(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader("<root>\n" + content + "\n</root>"))
	dec.Strict = false

	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse submitted markup: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				continue
			}
			if err := enc.EncodeToken(t); err != nil {
				return "", err
			}
		case xml.EndElement:
			depth--
			if depth == 0 {
				continue
			}
			if err := enc.EncodeToken(t); err != nil {
				return "", err
			}
		case xml.CharData:
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			if err := enc.EncodeToken(xml.CharData(text)); err != nil {
				return "", err
			}
		case xml.Comment:
			if err := enc.EncodeToken(t); err != nil {
				return "", err
			}
		}
	}
	if err := enc.Flush(); err != nil {
		return "", err
	}
	return strings.TrimLeft(buf.String(), "\n") + "\n", nil
}
