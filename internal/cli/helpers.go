package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/cadence/internal/types"
	"github.com/thenoetrevino/cadence/internal/user"
)

// ScopeEnv names the environment variable consulted when --scope is not given.
const ScopeEnv = "CADENCE_SCOPE"

// ErrNoScope is returned when neither --scope nor CADENCE_SCOPE is set.
var ErrNoScope = errors.New("no scope given")

// AddOutputFlags registers the agent-friendly --json and --quiet flags.
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// AddScopeFlag registers --scope.
func AddScopeFlag(cmd *cobra.Command) {
	cmd.Flags().String("scope", "", "Board scope as board:owner or board (uses "+ScopeEnv+" env var if not specified)")
}

// NewFormatter builds an OutputFormatter from the command's flags and writers.
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:   jsonOutput,
		Quiet:  quietMode,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}
}

// GetScope reads the scope from --scope, falling back to CADENCE_SCOPE.
// A bare board name is owned by the current user.
func GetScope(cmd *cobra.Command) (types.Scope, error) {
	scope, _ := cmd.Flags().GetString("scope")
	if scope == "" {
		scope = os.Getenv(ScopeEnv)
	}
	scope = strings.TrimSpace(scope)
	if scope == "" {
		return "", ErrNoScope
	}

	return ParseScope(scope)
}

// ParseScope parses board:owner, or a bare board name for the current user.
func ParseScope(scope string) (types.Scope, error) {
	board, owner, ok := strings.Cut(strings.TrimSpace(scope), ":")
	if !ok {
		owner = user.CurrentOwner()
	}
	if board == "" || owner == "" {
		return "", fmt.Errorf("scope %q must look like board:owner", scope)
	}
	return types.NewScope(board, owner), nil
}

// ScopeFromFlags is GetScope with the failure already reported through formatter.
func ScopeFromFlags(cmd *cobra.Command, formatter *OutputFormatter) (types.Scope, error) {
	scope, err := GetScope(cmd)
	if err != nil {
		return "", FailWithCode(formatter, "NO_SCOPE", ExitUsage, err,
			"Pass --scope focus:<owner> or export "+ScopeEnv)
	}
	return scope, nil
}
