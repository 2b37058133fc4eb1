// Package cli implements the one-shot scrape commands used for spot
// checks from a terminal, without running the server.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kusaka/npblive/internal/cache"
	"github.com/kusaka/npblive/internal/fetch"
	"github.com/kusaka/npblive/internal/scrape"
	"github.com/kusaka/npblive/internal/service"
	"github.com/kusaka/npblive/internal/standings"
	"github.com/kusaka/npblive/internal/teams"
	"github.com/spf13/cobra"
)

var (
	flagYear   int
	flagMonth  int
	flagFormat string
	flagDelay  time.Duration
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "npblive-cli",
		Short: "Scrape NPB results from the command line",
		Long: `One-shot scrapes against the NPB public results site.
Fetches the monthly calendar, a game's box score, or the derived
standings and prints them as text or JSON.`,
		SilenceUsage: true,
	}

	now := time.Now()
	cmd.PersistentFlags().IntVar(&flagYear, "year", now.Year(), "Season year")
	cmd.PersistentFlags().IntVar(&flagMonth, "month", int(now.Month()), "Month (1-12)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().DurationVar(&flagDelay, "delay", time.Second, "Courtesy delay before the request")

	cmd.AddCommand(newGamesCmd(), newStandingsCmd(), newDetailCmd())
	return cmd
}

// services builds a throwaway pipeline over an in-memory cache; a CLI
// run makes exactly one fetch, so the cache only exists to satisfy the
// orchestrator.
func services() (*service.GamesService, *service.StandingsService, *service.DetailService) {
	orch := fetch.New(cache.NewMemory(), scrape.NewClient(0, nil), nil)
	return service.NewGamesService(orch, time.Minute, flagDelay),
		service.NewStandingsService(orch, time.Minute, flagDelay),
		service.NewDetailService(orch, time.Minute, flagDelay)
}

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "Print the month's games with scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			games, _, _ := services()
			resp, err := games.Monthly(context.Background(), flagYear, flagMonth)
			if err != nil {
				return fmt.Errorf("fetching games: %w", err)
			}
			if flagFormat == "json" {
				return printJSON(resp)
			}
			for _, day := range resp.Games {
				fmt.Println(day.Date)
				for _, m := range day.Matches {
					fmt.Printf("  %s %d - %d %s\n", m.Away, m.AwayScore, m.HomeScore, m.Home)
				}
			}
			return nil
		},
	}
}

func newStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Print the month's standings per league",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, table, _ := services()
			resp, err := table.Monthly(context.Background(), flagYear, flagMonth)
			if err != nil {
				return fmt.Errorf("fetching standings: %w", err)
			}
			if flagFormat == "json" {
				return printJSON(resp)
			}
			printLeague("Central", resp.Central)
			printLeague("Pacific", resp.Pacific)
			return nil
		},
	}
}

func newDetailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detail <gameId>",
		Short: "Print one game's box score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, detail := services()
			resp, err := detail.Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("fetching game detail: %w", err)
			}
			if flagFormat == "json" {
				return printJSON(resp)
			}
			fmt.Printf("%s  %s\n", resp.Date, resp.Stadium)
			fmt.Printf("%s %s  R %d H %d E %d\n", resp.AwayTeam, joinInnings(resp.InningScores.Away), resp.Runs.Away, resp.Hits.Away, resp.Errors.Away)
			fmt.Printf("%s %s  R %d H %d E %d\n", resp.HomeTeam, joinInnings(resp.InningScores.Home), resp.Runs.Home, resp.Hits.Home, resp.Errors.Home)
			for _, warning := range resp.Warnings {
				fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
			}
			return nil
		},
	}
}

func printLeague(name string, rows []standings.Standing) {
	fmt.Printf("%s League\n", name)
	for _, row := range rows {
		fmt.Printf("  %d. %-14s %dG %dW-%dL-%dD  .%03.0f  GB %.1f\n",
			row.Rank, teamName(row.Team), row.Games, row.Wins, row.Losses, row.Draws,
			row.WinRate*1000, row.GamesBehind)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func joinInnings(innings []int) string {
	parts := make([]string, len(innings))
	for i, v := range innings {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, " ")
}

func teamName(id teams.ID) string {
	if t, ok := teams.ByID(id); ok {
		return t.Name
	}
	return string(id)
}
