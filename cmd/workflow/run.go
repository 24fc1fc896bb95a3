package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"contract-workflow-be/internal/bootstrap"
	"contract-workflow-be/internal/config"
	"contract-workflow-be/internal/dto"
	"contract-workflow-be/internal/pkg/logger"
	"contract-workflow-be/pkg/database"

	"github.com/spf13/cobra"
)

var errWorkflowFailed = errors.New("workflow failed")

var runInput string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one workflow input and print the final state as JSON",
	Long: `Reads a workflow input ({"action": ..., "data": ..., "options": ...}) from
--input, or stdin when the flag is "-", executes it once and writes the final
state to stdout. The exit code is non-zero when the workflow fails.`,
	Args: cobra.NoArgs,
	RunE: runWorkflow,
}

func init() {
	runCmd.Flags().StringVarP(&runInput, "input", "i", "-", "path to the workflow input JSON, - for stdin")
}

func runWorkflow(cmd *cobra.Command, args []string) error {
	input, err := loadInput(runInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg := config.Load()
	sysLogger := logger.NewConsoleLogger()
	defer sysLogger.Sync()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.DefaultPoolConfig(), false)
	if err != nil {
		return err
	}

	container, err := bootstrap.NewContainer(cmd.Context(), db, cfg, sysLogger)
	if err != nil {
		return err
	}
	defer container.Close()

	state := container.WorkflowService.Execute(cmd.Context(), input)
	if err := writeState(cmd.OutOrStdout(), state); err != nil {
		return err
	}

	if state.Status == dto.StatusFailed {
		return fmt.Errorf("%w: %s", errWorkflowFailed, state.Error)
	}
	return nil
}

// loadInput decodes a workflow input from path, or from stdin when path is "-".
// Shape errors surface later from the workflow itself.
func loadInput(path string, stdin io.Reader) (dto.WorkflowInput, error) {
	var input dto.WorkflowInput

	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return input, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return input, fmt.Errorf("decode input: %w", err)
	}
	return input, nil
}

func writeState(w io.Writer, state dto.WorkflowState) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(state)
}
