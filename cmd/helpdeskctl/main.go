// helpdeskctl is a terminal consumer of the helpdesk API built on the client
// and ticketcache packages. The local record cache persists between runs
// through Redis, so repeated lookups of the same ticket stay offline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/codigo-hd/helpdesk-service/internal/client"
	"github.com/codigo-hd/helpdesk-service/internal/config"
	"github.com/codigo-hd/helpdesk-service/internal/observability"
	"github.com/codigo-hd/helpdesk-service/internal/persistence"
	"github.com/codigo-hd/helpdesk-service/internal/ticketcache"
)

const usage = `usage: helpdeskctl [flags] <command>

commands:
  list [query]                 fetch a page of tickets and refresh the cache
  get <number>                 fetch full detail for a ticket
  status <number> <label>      change a ticket's status (display label)
  forget <number>              drop a ticket from the local cache
  cached                       print the local cache without network calls
`

func main() {
	apiURL := flag.String("api", envOr("HELPDESK_API_URL", "http://localhost:8080"), "API base URL")
	token := flag.String("token", os.Getenv("HELPDESK_API_TOKEN"), "bearer token (skips login)")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	redisConn := persistence.NewRedis(cfg.Redis, logger)
	defer redisConn.Close()

	cache, err := ticketcache.NewStore(ctx, ticketcache.NewRedisPersister(redisConn.Client, cfg.Redis.CacheKey))
	if err != nil {
		logger.Fatal("failed to load ticket cache", zap.Error(err))
	}

	api := client.NewHTTPClient(*apiURL, 0)
	switch {
	case *token != "":
		api.SetToken(*token)
	case os.Getenv("HELPDESK_API_EMAIL") != "":
		if err := api.Login(ctx, os.Getenv("HELPDESK_API_EMAIL"), os.Getenv("HELPDESK_API_PASSWORD")); err != nil {
			logger.Fatal("login failed", zap.Error(err))
		}
	}

	fetcher := client.NewFetcher(api, cache)

	if err := run(ctx, fetcher, cache, flag.Args()); err != nil {
		logger.Fatal("command failed", zap.String("command", flag.Arg(0)), zap.Error(err))
	}

	if err := cache.Flush(ctx); err != nil {
		logger.Warn("failed to persist ticket cache", zap.Error(err))
	}
}

func run(ctx context.Context, fetcher *client.Fetcher, cache *ticketcache.Store, args []string) error {
	switch args[0] {
	case "list":
		query := ""
		if len(args) > 1 {
			query = args[1]
		}
		page, err := fetcher.RefreshList(ctx, client.ListParams{Page: 1, PageSize: 50, Query: query})
		if err != nil {
			return err
		}
		printRecords(cache.List())
		fmt.Printf("%d of %d tickets\n", len(page.Items), page.Total)
		return nil
	case "get":
		if len(args) < 2 {
			return fmt.Errorf("get: ticket number required")
		}
		rec, err := fetcher.GetByNumber(ctx, args[1])
		if err != nil {
			return err
		}
		printDetail(rec)
		return nil
	case "status":
		if len(args) < 3 {
			return fmt.Errorf("status: ticket number and new status required")
		}
		if err := fetcher.UpdateStatusByNumber(ctx, args[1], args[2]); err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", args[1], args[2])
		return nil
	case "forget":
		if len(args) < 2 {
			return fmt.Errorf("forget: ticket number required")
		}
		if !fetcher.Remove(args[1]) {
			return fmt.Errorf("%s is not in the local cache", args[1])
		}
		return nil
	case "cached":
		printRecords(cache.List())
		return nil
	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printRecords(records []ticketcache.Record) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tSTATUS\tPRIORITY\tTITLE\tUPDATED")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			rec.ID, rec.Status, rec.Priority, rec.Title, rec.UpdatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func printDetail(rec *ticketcache.Record) {
	fmt.Printf("%s  %s / %s\n", rec.ID, rec.Status, rec.Priority)
	fmt.Printf("%s\n", rec.Title)
	if rec.Department != "" {
		fmt.Printf("department: %s  requester: %s\n", rec.Department, rec.Requester)
	}
	if rec.SLADeadline != nil {
		fmt.Printf("respond by: %s\n", rec.SLADeadline.Format("2006-01-02 15:04"))
	}
	if rec.Description != "" {
		fmt.Printf("\n%s\n", rec.Description)
	}
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
