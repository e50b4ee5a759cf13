package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/wintvf/internal/windowfn"
)

// FunctionInfo describes one windowing table function.
type FunctionInfo struct {
	Name       string   `json:"name"`
	Params     []string `json:"params"`
	MinArgs    int      `json:"min_args"`
	MaxArgs    int      `json:"max_args"`
	Signatures []string `json:"signatures"`
}

// FunctionList is the payload of the functions command. It prints as a
// table in text mode.
type FunctionList []FunctionInfo

func (l FunctionList) String() string {
	var sb strings.Builder
	for i, fn := range l {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s (%d-%d operands)\n", fn.Name, fn.MinArgs, fn.MaxArgs)
		fmt.Fprintf(&sb, "  params: %s\n", strings.Join(fn.Params, ", "))
		for _, sig := range fn.Signatures {
			fmt.Fprintf(&sb, "  %s\n", sig)
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// NewFunctionsCommand creates the functions command.
func NewFunctionsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "functions",
		Short: "List the windowing table functions",
		Long: `List TUMBLE, HOP and SESSION with their parameters and allowed forms.

Parameters after the operand minimum are optional.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    rootOpts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   rootOpts.Verbose,
				TraceID:   NewTraceID(),
			}
			return formatter.Success(listFunctions())
		},
	}
}

func listFunctions() FunctionList {
	fns := windowfn.Functions()
	list := make(FunctionList, 0, len(fns))
	for _, fn := range fns {
		lo, hi := fn.OperandCountRange()
		params := fn.Params()
		names := make([]string, len(params))
		for i, p := range params {
			names[i] = string(p)
		}
		list = append(list, FunctionInfo{
			Name:       fn.Name(),
			Params:     names,
			MinArgs:    lo,
			MaxArgs:    hi,
			Signatures: fn.Signatures(),
		})
	}
	return list
}
