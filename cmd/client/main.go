package main

import (
	"os"

	"github.com/pyropy/vault/lib/logger"
	"github.com/urfave/cli/v2"
)

var log, _ = logger.New("client-cli")

func main() {
	app := &cli.App{
		Name:  "client",
		Usage: "Manage a storage network account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rpc-url",
				Value:   "localhost:1235",
				Usage:   "Address of the vault to talk to",
				EnvVars: []string{"VAULT_RPC_URL"},
			},
			&cli.StringFlag{
				Name:  "store",
				Value: ".vault-client",
				Usage: "Directory holding the client key",
			},
		},
		Commands: []*cli.Command{
			createAccountCmd,
			putCmd,
			churnCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalln(err)
	}
}
