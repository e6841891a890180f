// Command arffmetrics writes an HTML statistics report for the numeric
// features of one ARFF dataset, or a drift comparison of two.
package main

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/wdm0006/arffutils/internal/cli"
	"github.com/wdm0006/arffutils/pkg/dataset"
	"github.com/wdm0006/arffutils/pkg/io/ioutils"
	"github.com/wdm0006/arffutils/pkg/report"
)

func main() {
	os.Exit(cli.Execute(newCommand()))
}

type flags struct {
	config string
	target string
	text   bool
}

func newCommand() *cobra.Command {
	var (
		common cli.Common
		fl     flags
	)
	cmd := &cobra.Command{
		Use:   "arffmetrics dataset.arff [other.arff] report.html",
		Short: "Report per-feature statistics of a dataset, or compare two datasets",
		Example: `  arffmetrics train.arff train.html
  arffmetrics train.arff test.arff drift.html --config report.yaml --text`,
		Args: cli.Args(cobra.RangeArgs(2, 3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := common.Logger(cmd)
			if err != nil {
				return err
			}
			cfg := report.DefaultConfig()
			if fl.config != "" {
				if cfg, err = report.LoadConfig(fl.config); err != nil {
					return err
				}
			}
			if fl.target != "" {
				cfg.TargetClass = fl.target
			}
			r, err := build(args[:len(args)-1], cfg)
			if err != nil {
				return err
			}
			if fl.text {
				if err := r.WriteText(cmd.OutOrStdout()); err != nil {
					return err
				}
			}
			return write(r, args[len(args)-1], logger)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&fl.config, "config", "c", "", "report configuration (.yaml, .toml or .json)")
	f.StringVar(&fl.target, "target-class", "", "target attribute, overriding the configuration")
	f.BoolVar(&fl.text, "text", false, "also print a console summary to stdout")
	common.Register(cmd)
	return cmd
}

func build(paths []string, cfg report.Config) (*report.Report, error) {
	ds := make([]*dataset.Dataset, len(paths))
	for i, p := range paths {
		d, err := dataset.LoadFile(p, cfg.DatasetOptions())
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	if len(ds) == 2 {
		return report.Compare(ds[0], ds[1], cfg)
	}
	return report.Analyze(ds[0], cfg)
}

func write(r *report.Report, path string, logger log.Logger) (err error) {
	out, err := ioutils.CreateOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	if err := r.WriteHTML(out); err != nil {
		return err
	}
	_ = level.Info(logger).Log("msg", "report written", "path", path, "datasets", len(r.Datasets), "features", len(r.Features))
	return nil
}
