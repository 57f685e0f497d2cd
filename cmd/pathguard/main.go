package main

import (
	"context"
	"os"

	"github.com/kitstream/pathguard/internal/cmd"
	"github.com/kitstream/pathguard/internal/logging"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var jsonLogs bool
	root := &cobra.Command{
		Use:   "pathguard",
		Short: "Path-safety validator and Kubernetes initContainer toolbox",
		Long: `pathguard validates untrusted paths, project names, and filenames before
they ever touch a filesystem call, and bundles that validation into a
small set of initContainer-style subcommands: fetch a resource, render a
template, or run an arbitrary command. Each runs PathCheck on the path it
writes to or works in (the --output of fetch and render, the --workdir of
run); the template path and the command itself are not checked.`,
		Version:       version,
		SilenceErrors: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			if l, ok := c.Context().Value(loggerKey{}).(*logging.Logger); ok {
				l.SetJSON(jsonLogs)
			}
		},
	}
	root.PersistentFlags().BoolVar(&jsonLogs, "json", false, "Enable JSON log output")
	log := logging.Default()
	ctx := withLogger(context.Background(), log)
	root.SetContext(ctx)
	root.AddCommand(cmd.NewCheckCmd(log))
	root.AddCommand(cmd.NewFetchCmd(log))
	root.AddCommand(cmd.NewRenderCmd(log))
	root.AddCommand(cmd.NewRunCmd(log))
	if err := root.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
