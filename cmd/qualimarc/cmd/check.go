package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abes-esr/qualimarc/internal/core/checker"
	"github.com/abes-esr/qualimarc/internal/rules"
	"github.com/abes-esr/qualimarc/internal/ruleset"
	"github.com/abes-esr/qualimarc/internal/telemetry"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check records against a rule set",
	Long: `Loads a YAML rule set, evaluates every record of a JSON or JSON Lines
file against it and writes the report to stdout.

Example:
  qualimarc check --rules rules.yaml --records records.jsonl --priority P1`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("rules", "", "rule set file (YAML)")
	checkCmd.Flags().String("records", "-", "records file (JSON array or JSON Lines, - for stdin)")
	checkCmd.Flags().Int("workers", 4, "records evaluated in parallel")
	checkCmd.Flags().String("metrics-file", "", "write Prometheus metrics to this textfile")
	checkCmd.Flags().String("priority", "", "only evaluate rules of this priority (P1, P2)")
	checkCmd.Flags().String("output", "json", "report format (json, jsonl)")
	checkCmd.Flags().Bool("failed-only", false, "jsonl output lists failing records only")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cmd.Flags().Changed("rules") {
		cfg.Checker.RulesFile, _ = cmd.Flags().GetString("rules")
	}
	if cmd.Flags().Changed("workers") {
		cfg.Checker.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("metrics-file") {
		cfg.Checker.MetricsFile, _ = cmd.Flags().GetString("metrics-file")
	}
	if cfg.Checker.RulesFile == "" {
		return fmt.Errorf("--rules required")
	}
	if cfg.Checker.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", cfg.Checker.Workers)
	}

	priorityFlag, _ := cmd.Flags().GetString("priority")
	priority, err := parsePriority(priorityFlag)
	if err != nil {
		return err
	}
	output, _ := cmd.Flags().GetString("output")
	if output != "json" && output != "jsonl" {
		return fmt.Errorf("output must be json or jsonl, got %q", output)
	}

	compiled, err := ruleset.Load(cfg.Checker.RulesFile)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	recordsPath, _ := cmd.Flags().GetString("records")
	records, err := checker.ReadRecordsFile(recordsPath)
	if err != nil {
		return err
	}

	var metrics *telemetry.Metrics
	if cfg.Checker.MetricsFile != "" {
		metrics = telemetry.New()
	}

	svc := checker.NewService(compiled, checker.Options{
		Workers:      cfg.Checker.Workers,
		MaxBatchSize: cfg.Checker.MaxBatchSize,
		Priority:     priority,
	}, logger, metrics)

	report, err := svc.Check(ctx, records)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(cfg.Checker.MetricsFile); err != nil {
			logger.Warn("failed to write metrics", zap.String("path", cfg.Checker.MetricsFile), zap.Error(err))
		}
	}

	if output == "jsonl" {
		failedOnly, _ := cmd.Flags().GetBool("failed-only")
		return report.WriteJSONL(cmd.OutOrStdout(), failedOnly)
	}
	return report.WriteJSON(cmd.OutOrStdout())
}

func parsePriority(s string) (rules.Priority, error) {
	switch strings.ToUpper(s) {
	case "":
		return rules.PriorityUnspecified, nil
	case "P1":
		return rules.PriorityP1, nil
	case "P2":
		return rules.PriorityP2, nil
	default:
		return rules.PriorityUnspecified, fmt.Errorf("priority must be P1 or P2, got %q", s)
	}
}
