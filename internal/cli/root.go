package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"feedback-prioritizer/internal/classifier"
	"feedback-prioritizer/internal/config"
	"feedback-prioritizer/internal/database"
	"feedback-prioritizer/internal/models"
	"feedback-prioritizer/internal/service"
	"feedback-prioritizer/internal/utils"
	"feedback-prioritizer/pkg/logger"
)

func NewRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "triage",
		Short:         "Customer feedback triage tools",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.AddCommand(newClassifyCmd(), newListCmd(), newHashPasswordCmd())
	return root
}

func newClassifyCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "classify <text>",
		Short: "Print the classification for a piece of feedback",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, ok := models.ParseCategory(category)
			if !ok {
				return fmt.Errorf("unknown category %q", category)
			}
			res := classifier.Classify(strings.Join(args, " "), cat)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", string(models.CategoryGeneral), "category hint")
	return cmd
}

func newListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored feedback by priority, as the dashboard shows it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := zerolog.Nop()
			if cfg.Env == "dev" {
				log = logger.NewWithWriter(cfg.Env, "triage", cmd.ErrOrStderr())
			}

			store, closeStore, err := database.OpenStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			v, err := service.NewFeedbackService(store).Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return printDashboard(cmd.OutOrStdout(), v, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n items (0 = all)")
	return cmd
}

func printDashboard(out io.Writer, v service.DashboardView, limit int) error {
	fmt.Fprintf(out, "total=%d critical=%d high=%d this_month=%d\n\n",
		v.Stats.Total, v.Stats.Critical, v.Stats.High, v.Stats.ThisMonth)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRIORITY\tBAND\tTHEME\tTEAM\tCATEGORY\tSUBMITTED\tID")
	for i, it := range v.Items {
		if limit > 0 && i >= limit {
			break
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.Analysis.Priority, it.Band, it.Analysis.Theme, it.Analysis.AssignedTeam,
			it.Category, it.CreatedAt.UTC().Format("2006-01-02 15:04"), it.ID)
	}
	return tw.Flush()
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := utils.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}
