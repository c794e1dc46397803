package main

import (
	"os"

	"paisa/alert-ingest/cmd/export"
	"paisa/alert-ingest/cmd/ingest"
	"paisa/alert-ingest/cmd/parse"
	"paisa/alert-ingest/cmd/root"
)

func main() {
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(export.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
