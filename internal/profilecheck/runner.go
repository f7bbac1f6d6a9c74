package profilecheck

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/podium/internal/domain/profile"
	"github.com/okian/podium/internal/domain/types"
	"github.com/okian/podium/pkg/logger"
)

// Run checks every listed country against the running service.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("profilecheck")

	log.Info(ctx, "starting profile check",
		logger.String("baseURL", config.BaseURL),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Int("countries", config.Countries))

	c := newClient(config.BaseURL, config.Timeout)
	if err := c.healthy(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	idx, err := loadIndex(ctx, c)
	if err != nil {
		return stats, err
	}
	countries := idx.countries
	if config.Countries > 0 && config.Countries < len(countries) {
		countries = countries[:config.Countries]
	}
	stats.Countries = len(countries)

	bounds := profile.Bounds{Min: idx.options.TopN.Min, Max: idx.options.TopN.Max, Default: idx.options.TopN.Default}

	var mu sync.Mutex
	record := func(vs []Violation, views ...types.View) {
		mu.Lock()
		defer mu.Unlock()
		stats.Violations = append(stats.Violations, vs...)
		for _, v := range views {
			stats.Profiles++
			switch v.State {
			case types.StatePopulated:
				stats.Populated++
			case types.StateNoMedals:
				stats.NoMedals++
			}
		}
		if config.Verbose {
			for _, v := range vs {
				log.Warn(ctx, "violation", logger.String("detail", v.String()))
			}
		}
	}
	failed := func(noc string, err error) {
		mu.Lock()
		defer mu.Unlock()
		stats.Failed++
		stats.Violations = append(stats.Violations, Violation{Country: noc, Rule: "request", Detail: err.Error()})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(config.Workers, 1))
	for i := range countries {
		summary := &countries[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			cc := newClient(config.BaseURL, config.Timeout)
			vs, views, err := checkCountry(gctx, cc, summary, bounds)
			if err != nil {
				failed(summary.NOC, err)
				return nil
			}
			record(vs, views...)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, fmt.Errorf("checking countries: %w", err)
	}

	vs, err := checkStates(ctx, newClient(config.BaseURL, config.Timeout), countries, bounds)
	if err != nil {
		failed("", err)
	} else {
		record(vs)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if len(stats.Violations) > 0 {
		return stats, fmt.Errorf("%w: %d", ErrViolations, len(stats.Violations))
	}
	log.Info(ctx, "profile check passed")
	return stats, nil
}

func loadIndex(ctx context.Context, c *client) (index, error) {
	var idx index
	if err := c.getJSON(ctx, "/api/countries", &idx.countries); err != nil {
		return idx, fmt.Errorf("country index: %w", err)
	}
	if len(idx.countries) == 0 {
		return idx, ErrNoCountries
	}
	if err := c.getJSON(ctx, "/api/options", &idx.options); err != nil {
		return idx, fmt.Errorf("options: %w", err)
	}
	return idx, nil
}

// checkCountry renders one country at the default, short and long top-N.
func checkCountry(ctx context.Context, c *client, summary *types.CountrySummary, b profile.Bounds) ([]Violation, []types.View, error) {
	noc := summary.NOC
	v, err := c.profile(ctx, noc, b.Default)
	if err != nil {
		return nil, nil, err
	}
	vs := CheckView(noc, v, b.Default, summary)
	if v.State != types.StatePopulated {
		return vs, []types.View{v}, nil
	}

	short, err := c.profile(ctx, noc, b.Clamp(shortTopN))
	if err != nil {
		return nil, nil, err
	}
	long, err := c.profile(ctx, noc, b.Clamp(longTopN))
	if err != nil {
		return nil, nil, err
	}
	vs = append(vs, CheckPrefix(noc, short, long)...)
	return vs, []types.View{v, short, long}, nil
}

// checkStates covers the states and session rules that do not depend on one country.
func checkStates(ctx context.Context, c *client, countries []types.CountrySummary, b profile.Bounds) ([]Violation, error) {
	var out []Violation
	add := func(rule, format string, args ...any) {
		out = append(out, Violation{Rule: rule, Detail: fmt.Sprintf(format, args...)})
	}

	v, err := c.profile(ctx, unknownCountry, b.Default)
	if err != nil {
		return nil, err
	}
	if v.State != types.StateNoData {
		add("no_data", "%s rendered %q", unknownCountry, v.State)
	}

	v, err = c.profile(ctx, "", b.Default)
	if err != nil {
		return nil, err
	}
	if v.State != types.StateEmpty {
		add("empty", "empty code rendered %q", v.State)
	}

	noc := countries[0].NOC
	for _, n := range []int{b.Min - 1, b.Max + 1} {
		v, err = c.profile(ctx, noc, n)
		if err != nil {
			return nil, err
		}
		if v.TopN != b.Clamp(n) {
			add("top_n_clamp", "top %d rendered %d", n, v.TopN)
		}
	}

	// The last profile request stored noc as the session's selection.
	before, err := c.selected(ctx)
	if err != nil {
		return nil, err
	}
	status, err := c.click(ctx, unknownCountry)
	if err != nil {
		return nil, err
	}
	after, err := c.selected(ctx)
	if err != nil {
		return nil, err
	}
	if status != http.StatusNoContent || after != before {
		add("signal_ignored", "status %d, selection %q -> %q", status, before, after)
	}

	if len(countries) > 1 {
		target := countries[1].NOC
		status, err = c.click(ctx, target)
		if err != nil {
			return nil, err
		}
		after, err = c.selected(ctx)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK || after != target {
			add("signal_accepted", "status %d, selection %q want %q", status, after, target)
		}
	}
	return out, nil
}

// displayFinalStats logs the run statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var okRate, perSecond float64
	if stats.Countries > 0 {
		okRate = float64(stats.Countries-stats.Failed) / float64(stats.Countries) * percentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Profiles) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("countries", stats.Countries),
		logger.Int("profiles", stats.Profiles),
		logger.Int("populated", stats.Populated),
		logger.Int("noMedals", stats.NoMedals),
		logger.Int("failed", stats.Failed),
		logger.Int("violations", len(stats.Violations)),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", okRate),
		logger.Float64("profilesPerSecond", perSecond))

	for i, v := range stats.Violations {
		if i == maxReportedViolations {
			log.Warn(ctx, "more violations not shown", logger.Int("remaining", len(stats.Violations)-i))
			break
		}
		log.Warn(ctx, "violation", logger.String("detail", v.String()))
	}
}
