package entities

import "github.com/spf13/cobra"

// ControllerBind holds the Cobra metadata a controller binds to.
type ControllerBind struct {
	Use   string
	Short string
	Long  string
}

// Controller is a CLI-facing handler wired into the root command. Execute
// returns the command error so the process can exit non-zero on failure.
type Controller interface {
	GetBind() ControllerBind
	Execute(cmd *cobra.Command, args []string) error
}
