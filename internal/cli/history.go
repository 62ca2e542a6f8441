package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gopinathan2007/office-visitor-flow/internal/domain"
	"github.com/gopinathan2007/office-visitor-flow/internal/service"
)

func newHistoryCmd() *cobra.Command {
	var (
		status, search string
		limit, offset  int
		today          bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Search past and present visits",
		Long:  "List visits newest first, optionally filtered by status, a name/company/host search, or today's date.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := domain.NewHistoryFilter(&limit, &offset, status, search)
			f.Today = today

			return withService(cmd.Context(), func(svc *service.VisitorService) error {
				page, err := svc.History(cmd.Context(), f)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if isJSON() {
					return printJSON(out, page)
				}
				if err := printVisitTable(out, page.Records); err != nil {
					return err
				}
				if page.Total > 0 {
					fmt.Fprintf(out, "\nShowing %d-%d of %d\n",
						page.Offset+1, page.Offset+len(page.Records), page.Total)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", domain.StatusFilterAll, "status filter (all|active|checked_out|no_show)")
	cmd.Flags().StringVar(&search, "search", "", "match against name, company or host")
	cmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, fmt.Sprintf("page size (max %d)", domain.MaxHistoryLimit))
	cmd.Flags().IntVar(&offset, "offset", 0, "number of visits to skip")
	cmd.Flags().BoolVar(&today, "today", false, "only visits checked in today")

	return cmd
}
