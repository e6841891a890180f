// Command arffselect keeps a chosen list of columns, in the given order, from
// an ARFF or delimited file.
package main

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/wdm0006/arffutils/internal/cli"
	"github.com/wdm0006/arffutils/pkg/arff"
	"github.com/wdm0006/arffutils/pkg/io/ioutils"
	"github.com/wdm0006/arffutils/pkg/transform/selection"
)

func main() {
	os.Exit(cli.Execute(newCommand()))
}

type flags struct {
	input, output string
	columns       []string
	configFile    string
	inD, outD     cli.Delimiter
}

func newCommand() *cobra.Command {
	var common cli.Common
	fl := flags{input: "-", output: "-", inD: ',', outD: ','}
	cmd := &cobra.Command{
		Use:   "arffselect (--columns col... | --config-file path)",
		Short: "Select columns by name or index, in the order given",
		Example: `  arffselect -i train.arff -o small.arff -n col2 col1
  arffselect -i data.csv --input-csv-delim ';' -f columns.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs := append(append([]string(nil), fl.columns...), args...)
			if err := validate(cmd, fl, specs); err != nil {
				return err
			}
			logger, err := common.Logger(cmd)
			if err != nil {
				return err
			}
			return run(fl, specs, logger)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&fl.input, "input-csv", "i", fl.input, `input file ("-" for stdin)`)
	f.StringVarP(&fl.output, "output-csv", "o", fl.output, `output file ("-" for stdout)`)
	f.StringArrayVarP(&fl.columns, "columns", "n", nil, "column name or index to keep; repeat, or list the rest as arguments")
	f.StringVarP(&fl.configFile, "config-file", "f", "", "file with whitespace-separated columns to keep")
	f.Var(&fl.inD, "input-csv-delim", "delimiter of the input")
	f.Var(&fl.outD, "output-csv-delim", "delimiter of the output")
	common.Register(cmd)
	return cmd
}

func validate(cmd *cobra.Command, fl flags, specs []string) error {
	byFlag := cmd.Flags().Changed("columns") || len(specs) > 0
	switch {
	case byFlag && fl.configFile != "":
		return cli.Usagef("--columns and --config-file are mutually exclusive")
	case !byFlag && fl.configFile == "":
		return cli.Usagef("one of --columns or --config-file is required")
	}
	return nil
}

func run(fl flags, specs []string, logger log.Logger) (err error) {
	if fl.configFile != "" {
		if specs, err = readColumnList(fl.configFile); err != nil {
			return err
		}
	}
	in, err := ioutils.OpenInput(fl.input)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()
	out, err := ioutils.CreateOutput(fl.output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	opt := selection.DefaultOptions()
	opt.InputDelimiter, opt.OutputDelimiter = fl.inD.Rune(), fl.outD.Rune()
	opt.Relation = arff.RelationName(out.Name())
	n, err := selection.Select(in, out, specs, opt)
	if err != nil {
		return err
	}
	_ = level.Debug(logger).Log("msg", "selected", "rows", n, "columns", len(specs))
	return nil
}

func readColumnList(path string) ([]string, error) {
	f, err := ioutils.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return selection.ParseColumnList(f)
}
