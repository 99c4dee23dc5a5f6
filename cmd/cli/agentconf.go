package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/huaijinli/wazuh/pkg/config"
	"github.com/huaijinli/wazuh/pkg/xmltree"
)

func newAgentConfCommand() *cobra.Command {
	var (
		group      string
		filename   string
		inputPath  string
		outputPath string
		format     string
		offset     int
		limit      int
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "agent-conf",
		Short: "Convert a group's agent.conf override blocks",
		Long: `agent-conf converts the group override configuration to its
structured form: one entry per distinct filter attribute set, blocks
with identical filters merged together.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			conv := config.NewConverter(nil, newLogger())

			var entries []config.AgentGroupConfig
			if inputPath != "" {
				raw, err := readInput(inputPath)
				if err != nil {
					return err
				}
				root, err := xmltree.ParseString(string(raw))
				if err != nil {
					return err
				}
				entries, err = conv.ConvertAgentConf(root)
				if err != nil {
					return err
				}
			} else {
				var err error
				entries, err = conv.GetAgentConf(newPaths(), group, filename)
				if err != nil {
					return err
				}
			}
			entries = config.CutSlice(entries, offset, limit)
			return writeAny(entries, format, outputPath, pretty)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "default", "group whose agent.conf to convert")
	cmd.Flags().StringVar(&filename, "file", "agent.conf", "file name inside the group directory")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "read a document directly instead of a group file (\"-\" for stdin)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json|yaml)")
	cmd.Flags().IntVar(&offset, "offset", 0, "first entry to return")
	cmd.Flags().IntVar(&limit, "limit", -1, "maximum number of entries to return")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "pretty print JSON output")
	return cmd
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
