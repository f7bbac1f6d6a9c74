// Package dataset loads the Olympic event table and the NOC region table from CSV.
package dataset

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/podium/internal/domain/model"
)

const (
	ctxCheckEvery = 4096 // rows between context checks
	naValue       = "NA"
	bom           = "\ufeff"
)

// Result is the outcome of a full dataset load.
type Result struct {
	Records []model.Record
	Regions []model.Region
	Skipped int
	Took    time.Duration
}

// athleteColumns maps lower-cased header names to their position.
type athleteColumns struct {
	id, name, gender, team, noc, games, year, season, city, sport, event, medal int
}

func athleteHeader(header []string) (athleteColumns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[normHeader(h)] = i
	}
	col := func(names ...string) int {
		for _, n := range names {
			if i, ok := idx[n]; ok {
				return i
			}
		}
		return -1
	}

	c := athleteColumns{
		id:     col("id"),
		name:   col("name", "athlete"),
		gender: col("sex", "gender"),
		team:   col("team"),
		noc:    col("noc"),
		games:  col("games"),
		year:   col("year"),
		season: col("season"),
		city:   col("city"),
		sport:  col("sport"),
		event:  col("event"),
		medal:  col("medal"),
	}
	required := map[string]int{
		"name": c.name, "noc": c.noc, "year": c.year,
		"sport": c.sport, "event": c.event, "medal": c.medal,
	}
	for n, i := range required {
		if i < 0 {
			return c, fmt.Errorf("%w: %s", ErrMissingColumn, n)
		}
	}
	return c, nil
}

func normHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, bom)))
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	v := strings.TrimSpace(rec[i])
	if v == naValue {
		return ""
	}
	return v
}

// ReadAthletes parses athlete_events rows from r.
// Rows without a NOC or with an unparsable year are skipped and counted.
func ReadAthletes(ctx context.Context, r io.Reader) ([]model.Record, int, error) {
	cr := newReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, ErrEmptyFile
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	cols, err := athleteHeader(header)
	if err != nil {
		return nil, 0, err
	}

	var (
		out     []model.Record
		skipped int
	)
	for line := 1; ; line++ {
		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, skipped, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("read row %d: %w", line, err)
		}

		noc := strings.ToUpper(field(rec, cols.noc))
		year, yerr := strconv.Atoi(field(rec, cols.year))
		if noc == "" || yerr != nil || year <= 0 {
			skipped++
			continue
		}
		out = append(out, model.Record{
			ID:     field(rec, cols.id),
			Name:   field(rec, cols.name),
			Gender: field(rec, cols.gender),
			Team:   field(rec, cols.team),
			NOC:    noc,
			Games:  field(rec, cols.games),
			Year:   year,
			Season: field(rec, cols.season),
			City:   field(rec, cols.city),
			Sport:  field(rec, cols.sport),
			Event:  field(rec, cols.event),
			Medal:  model.ParseMedal(field(rec, cols.medal)),
		})
	}
	return out, skipped, nil
}

// ReadRegions parses noc_regions rows from r.
func ReadRegions(ctx context.Context, r io.Reader) ([]model.Region, error) {
	cr := newReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	noc, region, notes := -1, -1, -1
	for i, h := range header {
		switch normHeader(h) {
		case "noc":
			noc = i
		case "region":
			region = i
		case "notes":
			notes = i
		}
	}
	if noc < 0 {
		return nil, fmt.Errorf("%w: noc", ErrMissingColumn)
	}

	var out []model.Region
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read region: %w", err)
		}
		code := strings.ToUpper(field(rec, noc))
		if code == "" {
			continue
		}
		out = append(out, model.Region{NOC: code, Region: field(rec, region), Notes: field(rec, notes)})
	}
	return out, nil
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(bufio.NewReaderSize(r, 1<<16))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

// open opens path, decompressing .gz files.
func open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("gzip %s: %w", path, err)
	}
	return &gzipFile{Reader: gz, f: f}, nil
}

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g *gzipFile) Close() error {
	return errors.Join(g.Reader.Close(), g.f.Close())
}

// LoadAthletes reads the athlete_events file at path.
func LoadAthletes(ctx context.Context, path string) ([]model.Record, int, error) {
	if path == "" {
		return nil, 0, ErrNoPath
	}
	rc, err := open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open athletes: %w", err)
	}
	defer func() { _ = rc.Close() }()
	return ReadAthletes(ctx, rc)
}

// LoadRegions reads the noc_regions file at path. An empty path yields no regions.
func LoadRegions(ctx context.Context, path string) ([]model.Region, error) {
	if path == "" {
		return nil, nil
	}
	rc, err := open(path)
	if err != nil {
		return nil, fmt.Errorf("open regions: %w", err)
	}
	defer func() { _ = rc.Close() }()
	return ReadRegions(ctx, rc)
}

// Load reads both tables concurrently.
func Load(ctx context.Context, athletesPath, regionsPath string) (*Result, error) {
	start := time.Now()
	res := &Result{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, skipped, err := LoadAthletes(gctx, athletesPath)
		if err != nil {
			return err
		}
		res.Records, res.Skipped = records, skipped
		return nil
	})
	g.Go(func() error {
		regions, err := LoadRegions(gctx, regionsPath)
		if err != nil {
			return err
		}
		res.Regions = regions
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Took = time.Since(start)
	return res, nil
}
