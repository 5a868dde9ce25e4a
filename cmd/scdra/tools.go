package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/procurea/scdra/providers/tool"
	"github.com/procurea/scdra/providers/tool/supplychain"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools available to the agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			toolset := supplychain.New(supplychain.Config{})
			for _, t := range tool.NewCatalog(toolset.All()...).Tools() {
				info := t.ToolInfo()
				marker := " "
				if t.SideEffect() == tool.SideEffectWorldChanging {
					marker = "!"
				}
				fmt.Printf("%s %-28s %s\n", marker, info.Name, info.Description)
			}
			fmt.Println("\n! = world-changing, requires explicit human approval")
			return nil
		},
	}
}
