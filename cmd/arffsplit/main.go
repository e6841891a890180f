// Command arffsplit routes the rows of a file into several outputs by
// membership of the row's key in per-output key sets.
package main

import (
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/spf13/cobra"

	"github.com/wdm0006/arffutils/internal/cli"
	"github.com/wdm0006/arffutils/pkg/arff"
	"github.com/wdm0006/arffutils/pkg/transform/split"
)

func main() {
	os.Exit(cli.Execute(newCommand()))
}

type flags struct {
	sets, outputs []string
	remainder     string
	delim         cli.Delimiter
	keyCol        int
	setKeyCol     int
	setDelim      cli.Delimiter
}

func newCommand() *cobra.Command {
	var common cli.Common
	fl := flags{delim: ',', setDelim: ','}
	cmd := &cobra.Command{
		Use:   "arffsplit file_to_split -s set... -o output... -r remainder",
		Short: "Split a file by key into one output per key set plus a remainder",
		Example: `  arffsplit all.arff -s train_ids.txt -s test_ids.txt -o train.arff -o test.arff -r rest.arff
  arffsplit rows.csv -s a.csv,b.csv -o a_rows.csv,b_rows.csv -r other.csv -k 2`,
		Args: cli.Args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(fl.sets) != len(fl.outputs) {
				return cli.Usagef("got %d set files but %d output files", len(fl.sets), len(fl.outputs))
			}
			if len(fl.sets) == 0 {
				return cli.Usagef("at least one -s/-o pair is required")
			}
			if fl.remainder == "" {
				return cli.Usagef("-r/--remainder-file-name is required")
			}
			logger, err := common.Logger(cmd)
			if err != nil {
				return err
			}
			return run(args[0], fl, logger)
		},
	}
	f := cmd.Flags()
	f.StringSliceVarP(&fl.sets, "set-file-names", "s", nil, "key set files, one per output")
	f.StringSliceVarP(&fl.outputs, "output-file-names", "o", nil, "output files, one per key set")
	f.StringVarP(&fl.remainder, "remainder-file-name", "r", "", "output for rows whose key is in no set")
	f.VarP(&fl.delim, "delimiter", "d", "delimiter of file_to_split and the outputs")
	f.IntVarP(&fl.keyCol, "key-column-in-main-csv", "k", 0, "key column index in file_to_split")
	f.IntVar(&fl.setKeyCol, "key-column-in-sets", 0, "key column index in the set files")
	f.Var(&fl.setDelim, "delimiter-in-sets", "delimiter of the set files")
	common.Register(cmd)
	return cmd
}

func run(path string, fl flags, logger log.Logger) (err error) {
	sets, err := readSets(fl)
	if err != nil {
		return err
	}
	s, err := cli.Open([]string{path}, append(append([]string(nil), fl.outputs...), fl.remainder))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()

	outs := make([]split.Output, len(s.Out))
	for i, o := range s.Out {
		outs[i] = split.Output{W: o, Relation: arff.RelationName(o.Name())}
	}
	opt := split.DefaultOptions()
	opt.Delimiter = fl.delim.Rune()
	opt.KeyColumn = fl.keyCol
	opt.Logger = logger
	_, err = split.Split(s.In[0], sets, outs[:len(sets)], outs[len(sets)], opt)
	return err
}

func readSets(fl flags) ([]split.KeySet, error) {
	s, err := cli.Open(fl.sets, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()
	sets := make([]split.KeySet, len(s.In))
	for i, in := range s.In {
		if sets[i], err = split.ReadKeySet(in, fl.setKeyCol, fl.setDelim.Rune()); err != nil {
			return nil, fmt.Errorf("%s: %w", in.Name(), err)
		}
	}
	return sets, nil
}
