package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/huaijinli/wazuh/pkg/config"
	"github.com/huaijinli/wazuh/pkg/xmltree"
)

func newConvertCommand() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		format     string
		section    string
		field      string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert ossec.conf to its structured form",
		Example: `  # Convert the installed ossec.conf
  wazuh-cfg convert

  # Convert a specific file and keep only one section
  wazuh-cfg convert -i ./ossec.conf --section syscheck

  # Read from stdin, emit yaml
  cat ossec.conf | wazuh-cfg convert -i - -f yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conv := config.NewConverter(nil, newLogger())

			var doc config.Map
			if inputPath == "-" {
				raw, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				root, err := xmltree.ParseString(string(raw))
				if err != nil {
					return err
				}
				full, err := conv.ConvertOssecConf(root)
				if err != nil {
					return err
				}
				doc, err = conv.Narrow(full, section, field)
				if err != nil {
					return err
				}
			} else {
				path := inputPath
				if path == "" {
					path = newPaths().OssecConf()
				}
				var err error
				doc, err = conv.GetOssecConf(path, section, field)
				if err != nil {
					return err
				}
			}
			return writeDocument(doc, format, outputPath, pretty)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input path (default: installed ossec.conf, \"-\" for stdin)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json|yaml)")
	cmd.Flags().StringVar(&section, "section", "", "keep only this section")
	cmd.Flags().StringVar(&field, "field", "", "keep only this field of --section")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "pretty print JSON output")
	return cmd
}
