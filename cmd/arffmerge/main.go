// Command arffmerge adds columns from one ARFF or delimited file to another,
// joining rows on a key column.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wdm0006/arffutils/internal/cli"
	"github.com/wdm0006/arffutils/pkg/arff"
	"github.com/wdm0006/arffutils/pkg/io/ioutils"
	"github.com/wdm0006/arffutils/pkg/transform/merge"
)

func main() {
	os.Exit(cli.Execute(newCommand()))
}

func newCommand() *cobra.Command {
	var (
		common cli.Common
		opt    = merge.DefaultOptions()
		mainD  = cli.Delimiter(opt.MainDelimiter)
		addD   = cli.Delimiter(opt.AddDelimiter)
		outD   = cli.Delimiter(opt.OutputDelimiter)
	)
	cmd := &cobra.Command{
		Use:   "arffmerge main_csv add_cols_csv output_csv",
		Short: "Insert columns from add_cols_csv into main_csv, matching rows by key",
		Example: `  arffmerge train.arff extra.arff merged.arff -i 1:3
  arffmerge main.csv add.csv - --main-csv-delim ';' --add-key-col 2`,
		Args: cli.Args(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := common.Logger(cmd)
			if err != nil {
				return err
			}
			opt.MainDelimiter, opt.AddDelimiter, opt.OutputDelimiter = mainD.Rune(), addD.Rune(), outD.Rune()
			opt.Logger = logger
			return run(args[0], args[1], args[2], opt)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opt.AddColumns, "add-input-position", "i", opt.AddColumns, "columns of add_cols_csv to import, first[:last] by index or ARFF name")
	f.IntVarP(&opt.OutputPosition, "output-position", "o", opt.OutputPosition, "where the imported columns go; negative counts from the end")
	f.Var(&mainD, "main-csv-delim", "delimiter of main_csv")
	f.Var(&addD, "add-csv-delim", "delimiter of add_cols_csv")
	f.Var(&outD, "output-csv-delim", "delimiter of output_csv")
	f.IntVar(&opt.MainKeyColumn, "main-key-col", opt.MainKeyColumn, "key column index in main_csv")
	f.IntVar(&opt.AddKeyColumn, "add-key-col", opt.AddKeyColumn, "key column index in add_cols_csv")
	common.Register(cmd)
	return cmd
}

func run(mainPath, addPath, outPath string, opt merge.Options) (err error) {
	ins, err := cli.Open([]string{mainPath, addPath}, nil)
	if err != nil {
		return err
	}
	defer func() { _ = ins.Close() }()

	add, err := merge.LoadAdditional(ins.In[1], opt)
	if err != nil {
		return err
	}
	out, err := ioutils.CreateOutput(outPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	opt.Relation = arff.RelationName(out.Name())
	_, err = merge.Merge(ins.In[0], out, add, opt)
	return err
}
