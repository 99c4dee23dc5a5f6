package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/huaijinli/wazuh/pkg/wzerrors"
)

// internal_options.conf is a flat list of "daemon.option=value" lines.
// A local_internal_options.conf, when present, overrides the shipped
// defaults option by option.

// ParseInternalOptions returns the raw value of one internal option,
// preferring the local override file.
func ParseInternalOptions(paths Paths, highName, lowName string) (string, error) {
	if _, err := os.Stat(paths.InternalOptions()); err != nil {
		return "", wzerrors.Newf(wzerrors.KindResourceUnavailable, "internal options file not found")
	}

	key := highName + "." + lowName

	if _, err := os.Stat(paths.LocalInternalOptions()); err == nil {
		if value, ok, err := scanOptionFile(paths.LocalInternalOptions(), key); err != nil {
			return "", err
		} else if ok {
			return value, nil
		}
	}

	value, ok, err := scanOptionFile(paths.InternalOptions(), key)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", wzerrors.Newf(wzerrors.KindResourceUnavailable, "value %s not found in internal options", key)
	}
	return value, nil
}

func scanOptionFile(path, key string) (string, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", false, wzerrors.New(wzerrors.KindResourceUnavailable, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		if strings.TrimSpace(name) == key {
			return strings.TrimSpace(value), true, nil
		}
	}
	return "", false, scanner.Err()
}

// GetInternalOptionsValue returns one internal option as an integer,
// enforcing its declared bounds.
func GetInternalOptionsValue(paths Paths, highName, lowName string, minValue, maxValue int) (int, error) {
	raw, err := ParseInternalOptions(paths, highName, lowName)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, wzerrors.Newf(wzerrors.KindMalformedInput,
			"option %s.%s must be a digit, found %q", highName, lowName, raw)
	}
	if value < minValue || value > maxValue {
		return 0, wzerrors.Newf(wzerrors.KindRange,
			"option %s.%s out of bounds: max %d, min %d, found %d", highName, lowName, maxValue, minValue, value)
	}
	return value, nil
}
