package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/hongminglow/authgate/internal/auth"
)

func hashPasswordCmd() *cli.Command {
	return &cli.Command{
		Name:      "hash-password",
		Usage:     "Print the bcrypt hash of a password",
		ArgsUsage: "<password>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "cost",
				Usage:   "bcrypt work factor",
				Value:   auth.DefaultCost,
				EnvVars: []string{"BCRYPT_COST"},
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return errors.New("expected exactly one password argument")
			}
			hasher, err := auth.NewPasswordHasher(c.Int("cost"))
			if err != nil {
				return err
			}
			hash, err := hasher.Hash(c.Args().First())
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, hash)
			return nil
		},
	}
}
