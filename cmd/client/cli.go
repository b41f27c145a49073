package main

import (
	"fmt"
	"os"

	"github.com/pyropy/vault/core/client"
	"github.com/pyropy/vault/core/model"
	"github.com/urfave/cli/v2"
)

func newClient(ctx *cli.Context) (*client.Client, error) {
	keys, err := client.NewKeyStore(ctx.String("store"))
	if err != nil {
		return nil, err
	}

	c, err := client.NewClient(ctx.Context, ctx.String("rpc-url"), keys)
	if err != nil {
		_ = keys.Close()
		return nil, err
	}

	return c, nil
}

func closeClient(c *client.Client) {
	_ = c.Close()
	_ = c.KeyStore.Close()
}

var createAccountCmd = &cli.Command{
	Name:  "create-account",
	Usage: "Open an account for this client",
	Action: func(ctx *cli.Context) error {
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer closeClient(c)

		id, err := c.CreateAccount(ctx.Context)
		if err != nil {
			return err
		}

		fmt.Println("account", c.Name(), "request", id)
		return nil
	},
}

var putCmd = &cli.Command{
	Name:  "put",
	Usage: "Store a file as immutable data",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "file-path",
			Required: true,
			Usage:    "Path to file you want to store",
		},
	},
	Action: func(ctx *cli.Context) error {
		content, err := os.ReadFile(ctx.String("file-path"))
		if err != nil {
			return err
		}

		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer closeClient(c)

		data := model.NewImmutableData(content)
		id, err := c.Put(ctx.Context, data)
		if err != nil {
			return err
		}

		fmt.Println("data", data.Name(), "request", id)
		return nil
	},
}

var churnCmd = &cli.Command{
	Name:  "churn",
	Usage: "Announce the current network nodes to the vault",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "node",
			Usage: "Hex encoded node name, repeatable",
		},
	},
	Action: func(ctx *cli.Context) error {
		var nodes []model.XorName
		for _, n := range ctx.StringSlice("node") {
			name, err := model.ParseXorName(n)
			if err != nil {
				return err
			}
			nodes = append(nodes, name)
		}

		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer closeClient(c)

		return c.Churn(ctx.Context, nodes)
	},
}
