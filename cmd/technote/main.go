package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "time/tzdata"
)

func main() {
	var root = &cobra.Command{Use: "technote", SilenceUsage: true}

	root.AddCommand(serveCMD(), migrateCMD(), tabsCMD(), scheduleCMD())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
