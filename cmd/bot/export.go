package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/florzoye/shop/internal/config"
	"github.com/florzoye/shop/internal/domain/brands"
	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/domain/products"
	"github.com/florzoye/shop/internal/domain/sales"
	"github.com/florzoye/shop/internal/infra/db"
	"github.com/florzoye/shop/internal/infra/logger"
	"github.com/florzoye/shop/internal/report"
	"github.com/florzoye/shop/internal/service"
)

func newExportSalesCmd(load func() (config.Config, error)) *cobra.Command {
	var (
		from, to, out string
		all           bool
	)

	cmd := &cobra.Command{
		Use:   "export-sales",
		Short: "Write sales for a period, or the whole ledger, to an xlsx file",
		Example: "  shop-bot export-sales --from 01.03.2024 --to 31.03.2024\n" +
			"  shop-bot export-sales --from 01.03.2024 --out march.xlsx\n" +
			"  shop-bot export-sales --all",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			log := logger.New(cfg.App.Env)

			if !all && from == "" {
				return errors.New("either --from or --all is required")
			}
			var period report.Period
			if !all {
				if to == "" {
					to = from
				}
				if period, err = report.ParsePeriod(from+"-"+to, cfg.Location()); err != nil {
					return err
				}
			}
			if out == "" {
				out = "sales_all.xlsx"
				if !all {
					out = report.FileName(period.From, period.To)
				}
			}

			pool, err := db.Connect(cmd.Context(), cfg.Postgres.DSN, cfg.Postgres.ConnectTimeout, log)
			if err != nil {
				return fmt.Errorf("db connect failed: %w", err)
			}
			defer pool.Close()

			shop := service.New(brands.NewRepo(pool), products.NewRepo(pool), sales.NewRepo(pool), catalog.NewRepo(pool),
				service.WithLogger(log))
			var (
				list   []sales.Sale
				totals sales.Totals
			)
			if all {
				list, totals, err = shop.AllSales(cmd.Context())
			} else {
				list, totals, err = shop.SalesReport(cmd.Context(), period.From, period.To)
			}
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := report.WriteSales(f, list, totals, cfg.Location()); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d sales, %d pcs, %.2f\n", out, totals.Count, totals.Quantity, totals.Revenue)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day, DD.MM.YYYY")
	cmd.Flags().StringVar(&to, "to", "", "last day, DD.MM.YYYY (defaults to --from)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (defaults to sales_<from>_<to>.xlsx)")
	cmd.Flags().BoolVar(&all, "all", false, "export the whole ledger")
	cmd.MarkFlagsMutuallyExclusive("all", "from")
	return cmd
}
