package main

import (
	"encoding/json"
	"fmt"
	"os"

	"google.golang.org/protobuf/encoding/protojson"
	"gopkg.in/yaml.v3"

	"github.com/huaijinli/wazuh/pkg/config"
)

// writeDocument serializes a converted document. JSON goes through the
// protobuf Struct bridge and protojson; yaml through the generic form.
func writeDocument(doc config.Map, format, outPath string, pretty bool) error {
	var payload []byte
	switch format {
	case "yaml":
		data, err := yaml.Marshal(config.ToAny(doc))
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		payload = data
	default:
		st, err := doc.Proto()
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		marshal := protojson.MarshalOptions{}
		if pretty {
			marshal.Multiline = true
			marshal.Indent = "  "
		}
		data, err := marshal.Marshal(st)
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		payload = data
	}
	return writeOutput(outPath, payload)
}

// writeAny serializes values that are not plain documents, such as the
// group override entry list.
func writeAny(v any, format, outPath string, pretty bool) error {
	var payload []byte
	var err error
	switch format {
	case "yaml":
		payload, err = yaml.Marshal(v)
	default:
		if pretty {
			payload, err = json.MarshalIndent(v, "", "  ")
		} else {
			payload, err = json.Marshal(v)
		}
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return writeOutput(outPath, payload)
}

func writeOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		if err == nil && (len(data) == 0 || data[len(data)-1] != '\n') {
			_, err = fmt.Fprintln(os.Stdout)
		}
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
