package main

import (
	"github.com/spf13/cobra"

	"github.com/huaijinli/wazuh/pkg/config"
)

func newActiveConfigCommand() *cobra.Command {
	var (
		agentID    string
		outputPath string
		format     string
		pretty     bool
	)

	cmd := &cobra.Command{
		Use:   "active-config <component> <configuration>",
		Short: "Query the live configuration of a running component",
		Long: `active-config asks a running component for the configuration it
currently holds in memory, which may differ from what is on disk.
Agent 000 is the local node; any other id routes the query through the
request socket.`,
		Example: `  wazuh-cfg active-config syscheck syscheck
  wazuh-cfg active-config --agent 017 logcollector localfile`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := config.GetActiveConfig(newPaths(), newLogger(), agentID, args[0], args[1])
			if err != nil {
				return err
			}
			return writeDocument(doc, format, outputPath, pretty)
		},
	}

	cmd.Flags().StringVar(&agentID, "agent", config.ManagerID, "agent id to query")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output path (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json|yaml)")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "pretty print JSON output")
	return cmd
}
