// Command arffconvert converts datasets between ARFF, JSON Lines and Parquet.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/wdm0006/arffutils/internal/cli"
	"github.com/wdm0006/arffutils/pkg/dataset"
	"github.com/wdm0006/arffutils/pkg/frame"
	"github.com/wdm0006/arffutils/pkg/io/ioutils"
	"github.com/wdm0006/arffutils/pkg/io/jsonlio"
	"github.com/wdm0006/arffutils/pkg/io/parquetio"
)

const (
	formatARFF    = "arff"
	formatJSONL   = "jsonl"
	formatParquet = "parquet"
)

func main() {
	os.Exit(cli.Execute(newCommand()))
}

type flags struct {
	from, to string
	target   string
}

func newCommand() *cobra.Command {
	var (
		common cli.Common
		fl     flags
	)
	cmd := &cobra.Command{
		Use:   "arffconvert input output",
		Short: "Convert a dataset between ARFF, JSON Lines and Parquet",
		Example: `  arffconvert train.arff train.parquet
  arffconvert rows.jsonl.gz rows.arff
  arffconvert - out.jsonl --from arff`,
		Args: cli.Args(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := resolveFormat(fl.from, args[0])
			if err != nil {
				return err
			}
			to, err := resolveFormat(fl.to, args[1])
			if err != nil {
				return err
			}
			if (from == formatParquet && args[0] == "-") || (to == formatParquet && args[1] == "-") {
				return cli.Usagef("parquet needs a file name, not a stream")
			}
			logger, err := common.Logger(cmd)
			if err != nil {
				return err
			}
			opt := dataset.DefaultOptions()
			if fl.target != "" {
				opt.TargetClass = fl.target
			}
			return run(args[0], from, args[1], to, opt, logger)
		},
	}
	f := cmd.Flags()
	f.StringVar(&fl.from, "from", "", "input format: arff, jsonl or parquet (default from the extension)")
	f.StringVar(&fl.to, "to", "", "output format: arff, jsonl or parquet (default from the extension)")
	f.StringVar(&fl.target, "target-class", "", "target attribute name")
	common.Register(cmd)
	return cmd
}

// resolveFormat returns the explicit format, or the one the extension of
// path names. .csv and .txt files hold ARFF text, as with the other tools.
func resolveFormat(explicit, path string) (string, error) {
	if explicit != "" {
		switch explicit {
		case formatARFF, formatJSONL, formatParquet:
			return explicit, nil
		}
		return "", cli.Usagef("unknown format %q", explicit)
	}
	switch ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(path, ".gz"))); ext {
	case ".arff", ".csv", ".txt":
		return formatARFF, nil
	case ".jsonl", ".ndjson":
		return formatJSONL, nil
	case ".parquet":
		return formatParquet, nil
	}
	return "", cli.Usagef("cannot tell the format of %q; use --from/--to", path)
}

func load(path, format string, opt dataset.Options) (*dataset.Dataset, error) {
	var (
		f   *frame.Frame
		err error
	)
	switch format {
	case formatJSONL:
		f, err = jsonlio.ReadFile(path, jsonlio.ReaderOptions{})
	case formatParquet:
		f, err = parquetio.ReadAll(path)
	default:
		return dataset.LoadFile(path, opt)
	}
	if err != nil {
		return nil, err
	}
	return dataset.FromFrame(dataset.NameStub(path), f, opt)
}

func run(in, from, out, to string, opt dataset.Options, logger log.Logger) error {
	d, err := load(in, from, opt)
	if err != nil {
		return err
	}
	switch to {
	case formatJSONL:
		err = jsonlio.WriteAll(out, d.Frame)
	case formatParquet:
		err = parquetio.WriteAll(out, d.Frame)
	default:
		err = writeARFF(out, d)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", out, err)
	}
	_ = level.Info(logger).Log("msg", "converted", "from", from, "to", to, "rows", d.Rows(), "attributes", len(d.Attributes))
	return nil
}

func writeARFF(path string, d *dataset.Dataset) (err error) {
	out, err := ioutils.CreateOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	return dataset.WriteARFF(out, d)
}
