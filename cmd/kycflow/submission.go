package main

import (
	"context"
	"fmt"
	"time"

	"kycflow/internal/db"
	"kycflow/internal/store"
	"kycflow/pkg/types"

	"github.com/google/uuid"
	"github.com/k0kubun/pp"
	"github.com/urfave/cli/v2"
)

var submissionCommand = &cli.Command{
	Name:      "submission",
	Usage:     "Print a stored submission",
	ArgsUsage: "<submission-id>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.ShowSubcommandHelp(c)
		}

		id, err := uuid.Parse(c.Args().First())
		if err != nil {
			return fmt.Errorf("invalid submission id: %w", err)
		}

		config, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		pool, err := db.Connect(ctx, config)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		repo := store.NewSubmissionRepository(pool, time.Duration(config.QueryTimeoutSec)*time.Second)

		sub, err := repo.Submission(ctx, id)
		if err != nil {
			return err
		}

		docs, err := types.ParseDocuments(sub.Documents)
		if err != nil {
			return err
		}

		pp.Println(sub.ID.String(), sub.Type, sub.Status, sub.Correlator, sub.CreatedAt, sub.UpdatedAt)
		pp.Println(docs)

		return nil
	},
}
