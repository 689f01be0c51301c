package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kryonis/lazysusan/internal/config"
	"github.com/kryonis/lazysusan/internal/extract"
	"github.com/kryonis/lazysusan/internal/logging"
	"github.com/kryonis/lazysusan/internal/observability"
	"github.com/kryonis/lazysusan/internal/orchestrator"
	"github.com/kryonis/lazysusan/internal/report"
	"github.com/kryonis/lazysusan/pkg/models"
)

var (
	askLang   string
	askBrief  bool
	askFile   string
	askJSON   bool
	askExport string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Run one council session from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log := logging.New("warn", "console")
		defer log.Sync()

		gateway, err := buildGateway(cfg)
		if err != nil {
			return err
		}

		panel, err := buildRoster(cfg)
		if err != nil {
			return err
		}

		var documentText string
		if askFile != "" {
			data, err := os.ReadFile(askFile)
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			documentText, err = extract.Text(askFile, data)
			if err != nil {
				return fmt.Errorf("extract document: %w", err)
			}
		}

		orch := orchestrator.New(orchestrator.Config{
			Gateway:          gateway,
			Roster:           panel,
			ConductorModel:   cfg.Models.Conductor,
			AgentTimeout:     cfg.Timeouts.Agent,
			SynthesisTimeout: cfg.Timeouts.Synthesis,
			Metrics:          observability.New(prometheus.NewRegistry()),
			Logger:           log,
		})

		res, err := orch.Run(cmd.Context(), orchestrator.Request{
			Question:     question,
			Lang:         models.ParseLanguage(askLang),
			Verbosity:    models.VerbosityFromBrief(askBrief),
			DocumentText: documentText,
		})
		if err != nil {
			return err
		}

		if askExport != "" {
			if err := os.WriteFile(askExport, []byte(report.Markdown(res)), 0644); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			fmt.Printf("report written to %s\n", askExport)
		}

		if askJSON {
			return json.NewEncoder(os.Stdout).Encode(res)
		}

		printResult(res)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askLang, "lang", "en", "Response language (en, ru, et)")
	askCmd.Flags().BoolVar(&askBrief, "brief", false, "Produce an extended strategic brief")
	askCmd.Flags().StringVar(&askFile, "file", "", "Attach a text document (.txt or .md)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the full result as JSON")
	askCmd.Flags().StringVar(&askExport, "export", "", "Write a Markdown report to this path")
}

func printResult(res *models.Result) {
	for _, agent := range res.Agents {
		if agent.Failed() {
			fmt.Printf("  %-18s FAILED: %s\n", agent.Agent, agent.Err)
		} else {
			fmt.Printf("  %-18s ok\n", agent.Agent)
		}
	}
	fmt.Printf("\n%s\n", res.Synthesis)
}
