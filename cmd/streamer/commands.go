package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maxviazov/user-stream-service/internal/model"
	"github.com/maxviazov/user-stream-service/pkg/render"
)

func newStreamCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stream",
		Short: "Stream every row one by one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := a.svc.StreamUsers(cmd.Context(), func(u model.User) error {
				render.User(os.Stdout, u)
				return nil
			})
			if err != nil {
				return err
			}
			a.log.Info().Int("rows", n).Msg("stream complete")
			return nil
		},
	}
}

func newBatchesCmd(a *app) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Stream rows in batches, printing only rows past the age filter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if size == 0 {
				size = a.cfg.Stream.DefaultBatchSize
			}
			n, err := a.svc.ProcessBatches(cmd.Context(), size, func(u model.User) error {
				render.User(os.Stdout, u)
				return nil
			})
			if err != nil {
				return err
			}
			a.log.Info().Int("rows", n).Int("batch_size", size).Msg("batch processing complete")
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "batch size (defaults to stream.default_batch_size)")
	return cmd
}

func newPaginateCmd(a *app) *cobra.Command {
	var size, offset int
	cmd := &cobra.Command{
		Use:   "paginate",
		Short: "Fetch a single page at the given offset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := a.streamer.Paginate(cmd.Context(), size, offset)
			if err != nil {
				return err
			}
			render.Page(os.Stdout, 1, offset, page)
			if total, err := a.repo.Count(cmd.Context()); err == nil {
				fmt.Printf("%d rows total\n", total)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 10, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "row offset to fetch from")
	return cmd
}

func newLazyCmd(a *app) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "lazy",
		Short: "Lazily paginate the whole table, one page fetch per step",
		RunE: func(cmd *cobra.Command, _ []string) error {
			it, err := a.streamer.LazyPaginate(cmd.Context(), size)
			if err != nil {
				return err
			}
			for n := 1; it.Next(); n++ {
				render.Page(os.Stdout, n, (n-1)*size, it.Page())
			}
			return it.Err()
		},
	}
	cmd.Flags().IntVar(&size, "size", 10, "page size")
	return cmd
}

func newAvgAgeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "avg-age",
		Short: "Compute the average age with a streaming mean",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.svc.AverageAge(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Average age of users: %.1f\n", res.Average)
			a.log.Info().Int("rows", res.Rows).Float64("average", res.Average).Msg("aggregation complete")
			return nil
		},
	}
}

func newConcurrentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "concurrent",
		Short: "Run the full scan and the older-than scan in parallel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := a.svc.FetchConcurrently(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Total users: %d\n", len(res.All))
			fmt.Printf("Users older than %d: %d\n", a.cfg.Stream.OlderThanAge, len(res.Older))
			return nil
		},
	}
}

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the data source is reachable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.pinger.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var csvPath string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the user_data table and import rows from a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.seeder.EnsureSchema(ctx); err != nil {
				return err
			}
			if csvPath == "" {
				return nil
			}
			n, err := a.seeder.ImportCSV(ctx, csvPath)
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d rows from %s\n", n, csvPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file with name,email,age columns")
	return cmd
}
