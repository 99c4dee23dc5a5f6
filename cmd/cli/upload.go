package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huaijinli/wazuh/pkg/config"
)

func newUploadCommand() *cobra.Command {
	var (
		group    string
		fileName string
	)

	cmd := &cobra.Command{
		Use:   "upload [input]",
		Short: "Validate and install a group's agent.conf",
		Long: `upload stages the submitted configuration, runs the syntax
validator over it and atomically replaces the group's agent.conf on
success. Reads from stdin when no input path is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) > 0 {
				input = args[0]
			}
			content, err := readInput(input)
			if err != nil {
				return err
			}
			msg, err := config.UploadGroupFile(newPaths(), newLogger(), group, fileName, string(content))
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "default", "group to update")
	cmd.Flags().StringVar(&fileName, "file", "agent.conf", "file name to update")
	return cmd
}
