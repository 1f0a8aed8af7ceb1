// Command tacit inspects and exercises domain knowledge configurations:
// listing registered domains, rendering enhanced prompts, and running the
// heuristic evaluation over a response from a file or stdin.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/promptforge/tacit/internal/domains"
	"github.com/promptforge/tacit/internal/optimizer"
	"github.com/promptforge/tacit/internal/registry"
)

var (
	verbose    bool
	domainsDir string

	logger *slog.Logger
	reg    *registry.Registry
)

var rootCmd = &cobra.Command{
	Use:   "tacit",
	Short: "Domain tacit knowledge for prompt optimization",
	Long: `tacit manages domain knowledge configurations and evaluates LLM
responses against domain-specific quality heuristics.

Built-in domains are always available; additional domains are loaded
from YAML or JSON documents with --domains-dir.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		reg = registry.New(logger)
		domains.RegisterBuiltins(reg)
		if domainsDir != "" {
			n, err := reg.LoadFromDirectory(domainsDir)
			if err != nil {
				return fmt.Errorf("load domains from %s: %w", domainsDir, err)
			}
			logger.Debug("loaded external domains", "dir", domainsDir, "count", n)
		}
		return nil
	},
}

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List registered domain types",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, d := range reg.Domains() {
			cfg, _ := reg.Domain(d)
			fmt.Printf("%-20s %s\n", d, cfg.DomainName)
		}
		return nil
	},
}

var showSummary bool

var showCmd = &cobra.Command{
	Use:   "show <domain>",
	Short: "Show a domain configuration",
	Long: `Print the domain configuration as a YAML document, or just the
count summary with --summary.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := optimizer.ForDomain(args[0], reg, nil, logger)
		if err != nil {
			return err
		}

		if showSummary {
			summary := opt.Summary()
			keys := make([]string, 0, len(summary))
			for k := range summary {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("%-32s %v\n", k, summary[k])
			}
			return nil
		}

		doc, err := yaml.Marshal(opt.Config().ToMap())
		if err != nil {
			return fmt.Errorf("render domain config: %w", err)
		}
		fmt.Print(string(doc))
		return nil
	},
}

var enhanceCmd = &cobra.Command{
	Use:   "enhance <domain> [instruction]",
	Short: "Render a domain-enhanced instruction",
	Long: `Render the given base instruction enhanced with the domain's
identity, top principles, and constraints. With no instruction argument
the base instruction is read from stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := optimizer.ForDomain(args[0], reg, nil, logger)
		if err != nil {
			return err
		}
		base, err := argOrStdin(args, 1)
		if err != nil {
			return err
		}
		fmt.Println(opt.EnhanceInstruction(base))
		return nil
	},
}

var personaCmd = &cobra.Command{
	Use:   "persona <domain>",
	Short: "Render the domain's expert persona prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := optimizer.ForDomain(args[0], reg, nil, logger)
		if err != nil {
			return err
		}
		fmt.Println(opt.ExpertPrompt())
		return nil
	},
}

var (
	evalGroundTruth string
	evalQuestion    string
)

var evalCmd = &cobra.Command{
	Use:   "eval <domain> [response-file]",
	Short: "Score a response with the domain's evaluator",
	Long: `Score a response against the domain's constraints, principles,
quality criteria, and case library. The response is read from the given
file, or from stdin when no file is supplied.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := optimizer.ForDomain(args[0], reg, nil, logger)
		if err != nil {
			return err
		}
		response, err := fileOrStdin(args, 1)
		if err != nil {
			return err
		}

		scores := opt.EvaluateResponse(response, evalGroundTruth, evalQuestion)
		metrics := make([]string, 0, len(scores))
		for m := range scores {
			metrics = append(metrics, m)
		}
		sort.Strings(metrics)
		for _, m := range metrics {
			fmt.Printf("%-28s %.3f\n", m, scores[m])
		}

		if failures := opt.CheckValidators(response); len(failures) > 0 {
			fmt.Println()
			for _, f := range failures {
				fmt.Printf("validator failed: %s\n", f)
			}
		}
		return nil
	},
}

var critiqueExamples string

var critiqueCmd = &cobra.Command{
	Use:   "critique <domain> [instruction]",
	Short: "Render the domain critique prompt for an instruction",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := optimizer.ForDomain(args[0], reg, nil, logger)
		if err != nil {
			return err
		}
		instruction, err := argOrStdin(args, 1)
		if err != nil {
			return err
		}
		fmt.Println(opt.Critique(instruction, critiqueExamples, nil))
		return nil
	},
}

func argOrStdin(args []string, idx int) (string, error) {
	if len(args) > idx {
		return args[idx], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func fileOrStdin(args []string, idx int) (string, error) {
	if len(args) > idx {
		data, err := os.ReadFile(args[idx])
		if err != nil {
			return "", fmt.Errorf("read response: %w", err)
		}
		return string(data), nil
	}
	return argOrStdin(args, idx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&domainsDir, "domains-dir", "", "Directory of YAML/JSON domain documents to load")

	showCmd.Flags().BoolVar(&showSummary, "summary", false, "Print the count summary instead of the full document")
	evalCmd.Flags().StringVar(&evalGroundTruth, "ground-truth", "", "Reference answer for accuracy scoring")
	evalCmd.Flags().StringVar(&evalQuestion, "question", "", "Original question for case library matching")
	critiqueCmd.Flags().StringVar(&critiqueExamples, "examples", "", "Example responses to include in the critique prompt")

	rootCmd.AddCommand(domainsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(enhanceCmd)
	rootCmd.AddCommand(personaCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(critiqueCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
