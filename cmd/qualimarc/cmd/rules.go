package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abes-esr/qualimarc/internal/rules"
	"github.com/abes-esr/qualimarc/internal/ruleset"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect rule sets",
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load and compile a rule set without checking records",
	RunE:  runRulesValidate,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesValidateCmd.Flags().String("rules", "", "rule set file (YAML)")
	rulesValidateCmd.Flags().Bool("verbose", false, "list every rule with its estimated evaluation cost")
}

func runRulesValidate(cmd *cobra.Command, args []string) error {
	path := cfg.Checker.RulesFile
	if cmd.Flags().Changed("rules") {
		path, _ = cmd.Flags().GetString("rules")
	}
	if path == "" {
		return fmt.Errorf("--rules required")
	}

	compiled, err := ruleset.Load(path)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	counts := map[rules.Priority]int{}
	for _, r := range compiled {
		counts[r.Priority]++
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "rule %d\t%s\tchecks=%d\tcost=%d\t%s\n",
				r.ID, r.Priority, len(r.Chain)+1, rules.EstimateCost(r), r.Message)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rules (P1: %d, P2: %d)\n",
		path, len(compiled), counts[rules.PriorityP1], counts[rules.PriorityP2])
	return nil
}
