package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/shu8h0-null/minledger/core/blockchain"
	"github.com/shu8h0-null/minledger/core/config"
	"github.com/shu8h0-null/minledger/core/rpc"
)

func main() {
	cmd := &cli.Command{
		Name:  config.AppName,
		Usage: "talk to a running node over JSON-RPC",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "rpc",
				Value: config.DefaultRPCAddr,
				Usage: "address of the node RPC endpoint",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print raw json instead of styled output",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "chain",
				Usage: "print the full chain",
				Action: withClient(func(ctx context.Context, cmd *cli.Command, client *rpc.Client) error {
					chain, err := client.Chain(ctx)
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						fmt.Println(renderJSON(chain))
						return nil
					}
					for i := range chain {
						fmt.Println(renderBlock(&chain[i]))
					}
					fmt.Println(field("length", len(chain)))
					return nil
				}),
			},
			{
				Name:  "get-block",
				Usage: "get block information",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "index",
						Usage:    "index of the block to query",
						Required: true,
					},
				},
				Action: withClient(func(ctx context.Context, cmd *cli.Command, client *rpc.Client) error {
					block, err := client.GetBlockByIndex(ctx, int64(cmd.Int("index")))
					if err != nil {
						return err
					}
					printBlock(cmd, block)
					return nil
				}),
			},
			{
				Name:  "last-block",
				Usage: "print the tip of the chain",
				Action: withClient(func(ctx context.Context, cmd *cli.Command, client *rpc.Client) error {
					block, err := client.LastBlock(ctx)
					if err != nil {
						return err
					}
					printBlock(cmd, block)
					return nil
				}),
			},
			{
				Name:  "mine",
				Usage: "forge a new block with the pending transactions",
				Action: withClient(func(ctx context.Context, cmd *cli.Command, client *rpc.Client) error {
					block, err := client.Mine(ctx)
					if err != nil {
						return err
					}
					fmt.Println(successStyle.Render("New block forged"))
					printBlock(cmd, block)
					return nil
				}),
			},
			{
				Name:  "send",
				Usage: "queue a transaction",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "sender", Required: true},
					&cli.StringFlag{Name: "recipient", Required: true},
					&cli.FloatFlag{Name: "amount", Required: true},
				},
				Action: withClient(func(ctx context.Context, cmd *cli.Command, client *rpc.Client) error {
					res, err := client.NewTransaction(ctx, cmd.String("sender"), cmd.String("recipient"), cmd.Float("amount"))
					if err != nil {
						return err
					}
					fmt.Println(successStyle.Render(fmt.Sprintf("Transaction will be added to Block %d", res.Index)))
					return nil
				}),
			},
			{
				Name:  "pending",
				Usage: "list transactions waiting for the next block",
				Action: withClient(func(ctx context.Context, cmd *cli.Command, client *rpc.Client) error {
					txs, err := client.Pending(ctx)
					if err != nil {
						return err
					}
					if cmd.Bool("json") {
						fmt.Println(renderJSON(txs))
						return nil
					}
					fmt.Println(field("pending", len(txs)))
					for _, tx := range txs {
						fmt.Println("  " + renderTransaction(tx))
					}
					return nil
				}),
			},
			{
				Name:      "register",
				Usage:     "register peer nodes",
				ArgsUsage: "<address>...",
				Action: withClient(func(ctx context.Context, cmd *cli.Command, client *rpc.Client) error {
					peers, err := client.RegisterNodes(ctx, cmd.Args().Slice())
					if err != nil {
						return err
					}
					fmt.Println(successStyle.Render("New nodes have been added"))
					for _, p := range peers {
						fmt.Println("  " + p)
					}
					return nil
				}),
			},
			{
				Name:  "resolve",
				Usage: "run consensus against the registered peers",
				Action: withClient(func(ctx context.Context, cmd *cli.Command, client *rpc.Client) error {
					res, err := client.Resolve(ctx)
					if err != nil {
						return err
					}
					if res.Replaced {
						fmt.Println(successStyle.Render("Our chain was replaced"))
					} else {
						fmt.Println(titleStyle.Render("Our chain is authoritative"))
					}
					fmt.Println(field("length", len(res.Chain)))
					return nil
				}),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

type clientAction func(ctx context.Context, cmd *cli.Command, client *rpc.Client) error

func withClient(action clientAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		client, closer, err := rpc.Dial(ctx, cmd.String("rpc"))
		if err != nil {
			return fmt.Errorf("connect to %s: %w", cmd.String("rpc"), err)
		}
		defer closer()
		return action(ctx, cmd, client)
	}
}

func printBlock(cmd *cli.Command, block *blockchain.Block) {
	if cmd.Bool("json") {
		fmt.Println(renderJSON(block))
		return
	}
	fmt.Println(renderBlock(block))
}
