package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetrion/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective rules as YAML",
	Long: `Print the rules a match would use after applying --config,
--variant and --difficulty. The output is a valid rules file:

  tetrion config --variant pure > ~/.tetrion/configs/tetrion.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	rules, err := loadRules()
	if err != nil {
		fail("%v", err)
	}
	data, err := config.Marshal(rules)
	if err != nil {
		fail("%v", err)
	}
	os.Stdout.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Println()
	}
}
