package app

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/animeutils/animesched/pkg/schedsdk"
)

// runLogin runs the full authorization flow with the local callback server
// and caches the resulting session.
func (a *Application) runLogin(ctx context.Context) error {
	a.auth.SetCallbackServer(func(authorizeURL string) error {
		fmt.Fprintf(os.Stderr, "Open the following URL in your browser to authorize:\n\n  %s\n\n", authorizeURL)
		return nil
	})

	if err := a.auth.Regenerate(ctx); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err := a.persistSession(ctx); err != nil {
		return err
	}

	a.logger.Info("login complete")
	return nil
}

// runRefresh refreshes the cached session without user interaction.
func (a *Application) runRefresh(ctx context.Context) error {
	if err := a.restoreSession(ctx); err != nil {
		return err
	}
	if a.auth.RefreshToken() == "" {
		return fmt.Errorf("refresh: no cached session; run login first")
	}

	if err := a.auth.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	if err := a.persistSession(ctx); err != nil {
		return err
	}

	a.logger.Info("session refreshed")
	return nil
}

// runTimetable prints a week's timetable as JSON.
func (a *Application) runTimetable(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("timetable", flag.ContinueOnError)
	airType := fs.String("air-type", "", "air type filter: raw, sub, dub or all")
	week := fs.Int("week", 0, "week number, requires -year")
	year := fs.Int("year", 0, "year the week belongs to, requires -week")
	tz := fs.String("tz", a.cfg.Timezone, "IANA timezone for episode times")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, limit, err := a.client.Timetables(ctx, schedsdk.TimetablesOptions{
		AirType:  schedsdk.AirType(*airType),
		Week:     *week,
		Year:     *year,
		Timezone: *tz,
	})
	if err != nil {
		return fmt.Errorf("timetable: %w", err)
	}

	a.logger.Debug("timetable fetched",
		"entries", len(entries),
		"ratelimit_remaining", limit.Remaining)
	return printJSON(entries)
}

// runSearch prints one page of anime search results as JSON.
func (a *Application) runSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	query := fs.String("q", "", "text filter")
	page := fs.Int("page", 1, "result page, starting at 1")
	sort := fs.String("sort", "", "sorting: popularity, score, alphabetic or releaseDate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	result, limit, err := a.client.SearchAnime(ctx, schedsdk.AnimeQuery{
		Query: *query,
		Page:  *page,
		Sort:  schedsdk.SortType(*sort),
	})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	a.logger.Debug("search complete",
		"total", result.TotalAmount,
		"ratelimit_remaining", limit.Remaining)
	return printJSON(result)
}

// runAccount prints a user's stats as JSON.
func (a *Application) runAccount(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("account", flag.ContinueOnError)
	userID := fs.String("user", "", "user id to fetch stats for")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID == "" {
		return fmt.Errorf("account: -user is required")
	}

	stats, _, err := a.client.UserStats(ctx, *userID)
	if err != nil {
		return fmt.Errorf("account: %w", err)
	}
	return printJSON(stats)
}

// runLogout revokes the cached session and clears the cache.
func (a *Application) runLogout(ctx context.Context) error {
	if err := a.restoreSession(ctx); err != nil {
		return err
	}

	// Best effort: local state is cleared even when the server rejects the
	// revocation.
	if err := a.auth.RevokeRefreshToken(ctx); err != nil {
		a.logger.Warn("revoke refresh token failed", "error", err)
	}
	if err := a.auth.RevokeToken(ctx); err != nil {
		a.logger.Warn("revoke access token failed", "error", err)
	}
	a.auth.Reset()

	if err := a.db.Tokens().Delete(ctx, a.cfg.ClientID); err != nil {
		return fmt.Errorf("logout: clear cache: %w", err)
	}

	a.logger.Info("logged out")
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
