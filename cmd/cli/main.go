package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/huaijinli/wazuh/pkg/config"
	"github.com/huaijinli/wazuh/pkg/logging"
)

var (
	// Global flags
	logLevel    string
	logFormat   string
	installRoot string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "wazuh-cfg",
		Short: "Wazuh configuration toolbox",
		Long: `wazuh-cfg converts Wazuh configuration documents (ossec.conf,
agent.conf) to their structured JSON form, queries the active in-memory
configuration of running components, and uploads shared group files.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace|debug|info|warn|error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console|json)")
	root.PersistentFlags().StringVar(&installRoot, "root", "", "installation root (default /var/ossec)")

	root.AddCommand(newConvertCommand())
	root.AddCommand(newAgentConfCommand())
	root.AddCommand(newActiveConfigCommand())
	root.AddCommand(newUploadCommand())
	return root
}

func newLogger() zerolog.Logger {
	return logging.New(os.Stderr, logLevel, logFormat)
}

func newPaths() config.Paths {
	p := config.DefaultPaths()
	if installRoot != "" {
		p.Root = installRoot
	}
	return p
}
