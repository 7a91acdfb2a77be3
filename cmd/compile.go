package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/bronystylecrazy/ultrawire/config"
	"github.com/bronystylecrazy/ultrawire/wiring"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats of the compile and watch commands.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

const noConsumerMessage = "no serializer service registered, nothing wired"

type CompileCommand struct {
	pipeline *Pipeline
	config   config.CompileConfig
}

func NewCompileCommand(pipeline *Pipeline, cfg config.CompileConfig) *CompileCommand {
	return &CompileCommand{pipeline: pipeline, config: cfg}
}

func (c *CompileCommand) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a services file and print the serializer wiring plan",
		Args:  cobra.NoArgs,
		RunE:  c.Run,
	}
	addPlanFlags(cmd, c.config)
	return cmd
}

func (c *CompileCommand) Run(cmd *cobra.Command, args []string) error {
	services, format, err := planFlags(cmd)
	if err != nil {
		return err
	}
	result, err := c.pipeline.Compile(cmd.Context(), services)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), result, format)
}

func addPlanFlags(cmd *cobra.Command, cfg config.CompileConfig) {
	cmd.Flags().StringP("services", "s", cfg.Services, "services file to compile")
	cmd.Flags().StringP("format", "f", cfg.Format, "output format: text, yaml or json")
}

func planFlags(cmd *cobra.Command) (string, string, error) {
	services, err := cmd.Flags().GetString("services")
	if err != nil {
		return "", "", err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", "", err
	}
	switch format {
	case FormatText, FormatYAML, FormatJSON:
	default:
		return "", "", fmt.Errorf("unsupported format %q", format)
	}
	return services, format, nil
}

func writeResult(out io.Writer, result *Result, format string) error {
	if result.Plan == nil {
		_, err := fmt.Fprintln(out, noConsumerMessage)
		return err
	}
	return writePlan(out, result.Plan, format)
}

func writePlan(out io.Writer, plan *wiring.Plan, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	default:
		_, err := io.WriteString(out, plan.String())
		return err
	}
}
