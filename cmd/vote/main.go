// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command vote is a terminal vote button for the hackathon showcase.
//
//	vote -server http://localhost:3318 -project 42
//	vote -project 42 -status
//	vote -leaderboard
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/hackathon-showcase/iplookup"
	"github.com/danielhkuo/hackathon-showcase/voteclient"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "vote:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("vote", flag.ContinueOnError)
	server := fs.String("server", "http://localhost:3318", "showcase server URL")
	projectID := fs.Int64("project", 0, "project ID to vote for")
	statusOnly := fs.Bool("status", false, "show the vote state without voting")
	leaderboard := fs.Bool("leaderboard", false, "print the leaderboard")
	memoryPath := fs.String("memory", "", "vote memory file (default: user config dir)")
	timeout := fs.Duration("timeout", 30*time.Second, "overall timeout")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	client := voteclient.New(*server)

	if *leaderboard {
		return printLeaderboard(ctx, client, out)
	}

	if *projectID <= 0 {
		return errors.New("-project is required")
	}

	path := *memoryPath
	if path == "" {
		p, err := voteclient.DefaultMemoryPath()
		if err != nil {
			return fmt.Errorf("locate vote memory: %w", err)
		}
		path = p
	}

	notifier := voteclient.NotifierFunc(func(n voteclient.Notification) {
		mark := "✓"
		if n.Destructive {
			mark = "!"
		}
		fmt.Fprintf(out, "%s %s: %s\n", mark, n.Title, n.Description)
	})

	btn := voteclient.NewButton(*projectID, client, iplookup.New(), voteclient.NewFileMemory(path), notifier)
	btn.Load(ctx)
	printState(out, *projectID, btn)

	if *statusOnly {
		return nil
	}

	err := btn.Vote(ctx)
	if errors.Is(err, voteclient.ErrAlreadyVoted) {
		return nil
	}
	if err != nil {
		return err
	}
	printState(out, *projectID, btn)
	return nil
}

func printState(out io.Writer, projectID int64, btn *voteclient.Button) {
	fmt.Fprintf(out, "project %d: %s, %s votes\n", projectID, btn.State(), humanize.Comma(int64(btn.Votes())))
}

func printLeaderboard(ctx context.Context, client *voteclient.Client, out io.Writer) error {
	rankings, err := client.Leaderboard(ctx)
	if err != nil {
		return err
	}
	if len(rankings) == 0 {
		fmt.Fprintln(out, "no votes yet")
		return nil
	}
	for i, r := range rankings {
		title := fmt.Sprintf("#%d", r.ProjectID)
		if r.Project != nil {
			title = r.Project.Title + " (" + r.Project.TeamName + ")"
		}
		fmt.Fprintf(out, "%5s  %8s  %s\n", humanize.Ordinal(i+1), humanize.Comma(int64(r.Votes)), title)
	}
	return nil
}
