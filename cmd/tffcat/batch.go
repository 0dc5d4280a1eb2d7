package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBatchCommand() *cobra.Command {
	var cols, rows int

	cmd := &cobra.Command{
		Use:   "batch file...",
		Short: "Render a batch of captured byte streams, one grid per file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cols == 0 {
				cols = 80
			}
			if rows == 0 {
				rows = 24
			}
			frames, err := renderFiles(args, cols, rows)
			for _, frame := range frames {
				fmt.Println(frame)
				fmt.Println("---")
			}
			return err
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 0, "grid width (default 80)")
	cmd.Flags().IntVar(&rows, "rows", 0, "grid height (default 24)")
	return cmd
}
