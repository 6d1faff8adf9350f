package loader

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/san-kum/inetmap/internal/atlas"
	"github.com/san-kum/inetmap/internal/join"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Sources names the two input files.
type Sources struct {
	Geometry     string
	Observations string
}

type Options struct {
	Names      atlas.NameTable
	Duplicates join.Policy
}

// Dataset is the joined result handed to the player.
type Dataset struct {
	Store        *atlas.Store
	Observations []join.Observation
	Report       join.Report
	// Max is the largest observed value in the whole series, matched or not.
	Max float64
}

func (d *Dataset) Years() []int { return d.Report.Years }

// Load reads both sources concurrently and joins them once both are in.
// A failure in either load aborts the other and no join happens.
func Load(ctx context.Context, src Sources, opts Options) (*Dataset, error) {
	log := zap.L().With(zap.String("component", "loader"))

	var (
		regions []Region
		obs     []join.Observation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		regions, err = LoadGeometry(gctx, src.Geometry)
		return err
	})
	g.Go(func() error {
		var err error
		obs, err = LoadObservations(gctx, src.Observations)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds, err := Assemble(regions, obs, opts)
	if err != nil {
		return nil, err
	}

	log.Info("dataset loaded",
		zap.Int("regions", ds.Store.Len()),
		zap.Int("observations", len(obs)),
		zap.Int("years", len(ds.Report.Years)),
		zap.Int("observed_regions", ds.Store.Observed()),
		zap.Strings("unmatched", ds.Report.Unmatched),
		zap.Int("duplicates", ds.Report.Duplicates),
	)
	return ds, nil
}

// Assemble builds the store from regions and joins obs into it.
func Assemble(regions []Region, obs []join.Observation, opts Options) (*Dataset, error) {
	st := atlas.New(opts.Names)
	for _, r := range regions {
		if _, err := st.Add(r.Name, r.Geometry); err != nil {
			return nil, eris.Wrap(err, "loader: build store")
		}
	}

	report, err := join.Run(st, obs, join.Options{Duplicates: opts.Duplicates})
	if err != nil {
		return nil, eris.Wrap(err, "loader: join")
	}

	return &Dataset{
		Store:        st,
		Observations: obs,
		Report:       report,
		Max:          join.Max(obs),
	}, nil
}
