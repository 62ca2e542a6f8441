package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gopinathan2007/office-visitor-flow/internal/service"
)

func newActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "List visitors currently on site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(svc *service.VisitorService) error {
				visits, err := svc.ListActive(cmd.Context())
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if isJSON() {
					return printJSON(out, visits)
				}
				if err := printVisitTable(out, visits); err != nil {
					return err
				}
				if len(visits) > 0 {
					fmt.Fprintf(out, "\nOn site: %d\n", len(visits))
				}
				return nil
			})
		},
	}
}
