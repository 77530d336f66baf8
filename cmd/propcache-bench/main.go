// propcache-bench exercises access drivers with synthetic property-access
// workloads and reports cache behavior.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"propcache/pkg/config"
	"propcache/pkg/ic"
	"propcache/pkg/key"
	"propcache/pkg/object"
	"propcache/pkg/value"
)

var (
	cfgFile   string
	maxDepth  int
	sites     int
	rounds    int
	workers   int
	workloads []string
	verbose   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "propcache-bench",
		Short: "Exercise adaptive property-access caches with synthetic workloads",
		Long: `propcache-bench drives property reads and writes through per-site
specialization chains and reports how each workload shapes the caches:
which specializations get installed, when chains collapse to the generic
dispatcher, and the resulting hit rates.`,
		RunE: run,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default propcache.yaml)")
	flags.IntVar(&maxDepth, "max-depth", 0, "specialized entries per chain before collapse")
	flags.IntVar(&sites, "sites", 0, "number of simulated access sites")
	flags.IntVar(&rounds, "rounds", 0, "accesses per site")
	flags.IntVar(&workers, "workers", 0, "concurrent workers per workload")
	flags.StringSliceVar(&workloads, "workload", nil, "workloads to run (monomorphic, index, proxy, megamorphic)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "print per-chain detail")

	return rootCmd
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	// Flags override config file and env values.
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if cmd.Flags().Changed("sites") {
		cfg.Bench.Sites = sites
	}
	if cmd.Flags().Changed("rounds") {
		cfg.Bench.Rounds = rounds
	}
	if cmd.Flags().Changed("workers") {
		cfg.Bench.Workers = workers
	}
	if cmd.Flags().Changed("workload") {
		cfg.Bench.Workloads = workloads
	}

	engine := object.NewEngine()

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.AppendHeader(table.Row{"Workload", "Accesses", "Hits", "Misses", "Hit rate", "Installs", "Collapses", "Elapsed"})

	for _, name := range cfg.Bench.Workloads {
		wl, ok := workloadByName(name)
		if !ok {
			return fmt.Errorf("unknown workload %q", name)
		}
		start := time.Now()
		stats, err := runWorkload(engine, cfg, wl)
		if err != nil {
			return fmt.Errorf("workload %s: %w", name, err)
		}
		elapsed := time.Since(start)
		total := stats.Hits + stats.Misses
		tw.AppendRow(table.Row{
			name, total, stats.Hits, stats.Misses,
			fmt.Sprintf("%.1f%%", stats.HitRate()*100),
			stats.Installs, stats.Collapses, elapsed.Round(time.Microsecond),
		})
	}
	tw.Render()
	return nil
}

// workload drives one access pattern against a single site's driver.
type workload func(engine *object.Engine, d *ic.Driver, rounds int) error

func workloadByName(name string) (workload, bool) {
	switch name {
	case "monomorphic":
		return monomorphicWorkload, true
	case "index":
		return indexWorkload, true
	case "proxy":
		return proxyWorkload, true
	case "megamorphic":
		return megamorphicWorkload, true
	default:
		return nil, false
	}
}

func runWorkload(engine *object.Engine, cfg *config.Config, wl workload) (ic.Stats, error) {
	tbl := ic.NewSiteTable(engine, cfg.Bench.Sites,
		ic.WithMaxDepth(cfg.MaxDepth),
		ic.WithStrict(cfg.Strict),
		ic.WithDefineOwn(cfg.DefineOwn),
	)

	var g errgroup.Group
	nWorkers := max(cfg.Bench.Workers, 1)
	for w := 0; w < nWorkers; w++ {
		g.Go(func() error {
			// Every worker walks every site, so shared drivers see
			// concurrent guard evaluation and racing rewrites.
			for site := 0; site < tbl.Len(); site++ {
				if err := wl(engine, tbl.Site(site), cfg.Bench.Rounds); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ic.Stats{}, err
	}

	stats := tbl.TotalStats()
	if verbose {
		for site := 0; site < tbl.Len(); site++ {
			tbl.Site(site).PrintStats(os.Stdout)
		}
	}
	return stats, nil
}

// monomorphicWorkload writes and reads the same literal name every round; the
// chain should stabilize on one cached-name entry.
func monomorphicWorkload(_ *object.Engine, d *ic.Driver, rounds int) error {
	target := object.NewPlainObject(value.Null).Value()
	name := value.NewString("x")
	for i := 0; i < rounds; i++ {
		if err := d.ExecuteSet(target, name, value.IntegerValue(int64(i))); err != nil {
			return err
		}
		if _, err := d.ExecuteGet(target, name); err != nil {
			return err
		}
	}
	return nil
}

// indexWorkload writes native-integer keys, then stringified ones, forcing
// the fast index entry to be superseded by the general form.
func indexWorkload(_ *object.Engine, d *ic.Driver, rounds int) error {
	arr := object.NewArray().Value()
	for i := 0; i < rounds; i++ {
		idx := int64(i % 32)
		if err := d.ExecuteSet(arr, value.IntegerValue(idx), value.IntegerValue(idx)); err != nil {
			return err
		}
		if i%4 == 3 {
			str := value.NewString(strconv.FormatInt(idx, 10))
			if err := d.ExecuteSet(arr, str, value.IntegerValue(idx)); err != nil {
				return err
			}
		}
	}
	return nil
}

// proxyWorkload routes every access through a counting set/get trap.
func proxyWorkload(engine *object.Engine, d *ic.Driver, rounds int) error {
	backing := object.NewPlainObject(value.Null)
	proxy := object.NewProxy(backing.Value(), object.Handler{
		Set: func(target, _ value.Value, k key.Key, v value.Value) error {
			return engine.SetNamed(target, k.PropertyName(), v, false)
		},
		Get: func(target, _ value.Value, k key.Key) (value.Value, error) {
			v, _ := engine.GetNamedOwnOrInherited(target, k.PropertyName())
			return v, nil
		},
	}).Value()
	name := value.NewString("y")
	for i := 0; i < rounds; i++ {
		if err := d.ExecuteSet(proxy, name, value.IntegerValue(int64(i))); err != nil {
			return err
		}
		if _, err := d.ExecuteGet(proxy, name); err != nil {
			return err
		}
	}
	return nil
}

// megamorphicWorkload cycles through more distinct names than any depth
// bound, collapsing every chain to the generic dispatcher. Properties are
// periodically deleted so the object churns through define/delete cycles
// instead of settling into a fixed layout.
func megamorphicWorkload(engine *object.Engine, d *ic.Driver, rounds int) error {
	po := object.NewPlainObject(value.Null)
	target := po.Value()
	names := make([]value.Value, 16)
	for i := range names {
		names[i] = value.NewString("p" + strconv.Itoa(i))
	}
	for i := 0; i < rounds; i++ {
		name := names[i%len(names)]
		if err := d.ExecuteSet(target, name, value.IntegerValue(int64(i))); err != nil {
			return err
		}
		if i%256 == 255 {
			for _, own := range po.OwnKeys() {
				if _, err := engine.DeleteNamed(target, own, false); err != nil {
					return err
				}
			}
		}
	}
	if got := len(po.OwnKeys()); got > len(names) {
		return fmt.Errorf("expected at most %d own properties, found %d", len(names), got)
	}
	return nil
}
