package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the mymanabox version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("mymanabox", version)
		},
	}
}
