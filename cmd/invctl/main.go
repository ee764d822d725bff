/*
main.go - CLI client for the investment engine

PURPOSE:
  Drives the client controller from the command line: the same
  controller/state path a graphical client uses, minus the rendering.
  Useful for smoke-testing a running server and as a reference consumer
  of the client package.

USAGE:
  invctl [flags] list
  invctl [flags] create -inv-name "Car Fund" -name Alice -inv-type FD \
         -return-type Ordinary -inv-amount 1000 -return-amount 1100 \
         -return-rate 10 -start 2024-01-01 -end 2025-01-01
  invctl [flags] renew -id <id> -return-amount 1200 ...
  invctl [flags] delete -id <id>

FLAGS:
  -addr     API base URL (overrides config)
  -config   Directory containing invest.yaml (default ".")

RENEW:
  Renew pre-fills the patch from the current record, then overlays any
  provided flags, matching the edit form's behavior of starting from the
  existing values.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/warp/invest-engine/client"
	"github.com/warp/invest-engine/config"
	"github.com/warp/invest-engine/invest"
)

func main() {
	configPath := flag.String("config", ".", "directory containing invest.yaml")
	addr := flag.String("addr", "", "API base URL (overrides config)")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	if *addr != "" {
		cfg.Client.BaseURL = *addr
	}

	ctrl := client.NewController(
		client.New(cfg.Client.BaseURL, cfg.Client.Timeout, log),
		client.NewState(),
		cfg.Client.Timeout,
	)

	if flag.NArg() < 1 {
		usage()
	}

	ctx := context.Background()
	var cmdErr error
	switch flag.Arg(0) {
	case "list":
		cmdErr = runList(ctx, ctrl)
	case "create":
		cmdErr = runCreate(ctx, ctrl, flag.Args()[1:])
	case "renew":
		cmdErr = runRenew(ctx, ctrl, flag.Args()[1:])
	case "delete":
		cmdErr = runDelete(ctx, ctrl, flag.Args()[1:])
	default:
		usage()
	}

	if cmdErr != nil {
		log.WithError(cmdErr).Fatal("Command failed")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: invctl [flags] {list|create|renew|delete} [args]")
	os.Exit(2)
}

func runList(ctx context.Context, ctrl *client.Controller) error {
	if err := ctrl.Initialize(ctx); err != nil {
		return err
	}
	for _, inv := range ctrl.State().Snapshot() {
		fmt.Printf("%s  %-20s %-12s %s/%s  %d -> %d (%d%%)  %s .. %s\n",
			inv.ID, inv.InvName, inv.HolderName, inv.InvType, inv.ReturnType,
			inv.InvAmount, inv.ReturnAmount, inv.ReturnRate,
			dateStr(inv.StartDate), dateStr(inv.EndDate))
	}
	return nil
}

func runCreate(ctx context.Context, ctrl *client.Controller, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	inv := invest.Investment{}
	bindRecordFlags(fs, &inv)
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := ctrl.Create(ctx, inv)
	if err != nil {
		return err
	}
	fmt.Printf("created %s\n", created.ID)
	return nil
}

func runRenew(ctx context.Context, ctrl *client.Controller, args []string) error {
	fs := flag.NewFlagSet("renew", flag.ExitOnError)
	id := fs.String("id", "", "record id (required)")
	inv := invest.Investment{}
	bindRecordFlags(fs, &inv)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("%w: -id is required", invest.ErrInvalidArgument)
	}

	// Start from the current record so unset flags keep their values.
	current, err := ctrl.Client().Get(ctx, *id)
	if err != nil {
		return err
	}

	merged, err := ctrl.Renew(ctx, overlay(current, inv, fs))
	if err != nil {
		return err
	}
	fmt.Printf("renewed %s (return %d)\n", merged.ID, merged.ReturnAmount)
	return nil
}

func runDelete(ctx context.Context, ctrl *client.Controller, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "record id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("%w: -id is required", invest.ErrInvalidArgument)
	}

	affected, err := ctrl.Delete(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d record(s)\n", affected.RowsAffected)
	return nil
}

// bindRecordFlags binds the record's fields to flags on fs. Dates parse as
// YYYY-MM-DD, pinned to midnight UTC.
func bindRecordFlags(fs *flag.FlagSet, inv *invest.Investment) {
	fs.StringVar(&inv.InvName, "inv-name", "", "investment name")
	fs.StringVar(&inv.HolderName, "name", "", "holder name")
	fs.StringVar(&inv.InvType, "inv-type", "", "investment type (FD, RD)")
	fs.StringVar(&inv.ReturnType, "return-type", "", "return type (Ordinary, Cumulative)")
	fs.IntVar(&inv.InvAmount, "inv-amount", 0, "principal amount")
	fs.IntVar(&inv.ReturnAmount, "return-amount", 0, "maturity amount")
	fs.IntVar(&inv.ReturnRate, "return-rate", 0, "return rate, percentage points")
	fs.Func("start", "start date (YYYY-MM-DD)", dateFlag(&inv.StartDate))
	fs.Func("end", "end date (YYYY-MM-DD)", dateFlag(&inv.EndDate))
}

func dateFlag(dst **time.Time) func(string) error {
	return func(s string) error {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return err
		}
		d = d.UTC()
		*dst = &d
		return nil
	}
}

// overlay copies only the flag-set fields of edit over base.
func overlay(base, edit invest.Investment, fs *flag.FlagSet) invest.Investment {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "inv-name":
			base.InvName = edit.InvName
		case "name":
			base.HolderName = edit.HolderName
		case "inv-type":
			base.InvType = edit.InvType
		case "return-type":
			base.ReturnType = edit.ReturnType
		case "inv-amount":
			base.InvAmount = edit.InvAmount
		case "return-amount":
			base.ReturnAmount = edit.ReturnAmount
		case "return-rate":
			base.ReturnRate = edit.ReturnRate
		case "start":
			base.StartDate = edit.StartDate
		case "end":
			base.EndDate = edit.EndDate
		}
	})
	return base
}

func dateStr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}
