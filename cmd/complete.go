package cmd

import (
	"flag"
	"io"

	"github.com/gmonteiro13/simulador-investimentos/config"
	"github.com/gmonteiro13/simulador-investimentos/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors of flag values, by flag name. Other flags take any value.
var predictors = map[string]complete.Predictor{
	"config":   predict.Files("*.toml"),
	"prices":   predict.Files("*.csv"),
	"o":        predict.Files("*.csv"),
	"db":       predict.Files("*.db"),
	"out":      predict.Dirs("*"),
	"cache":    predict.Dirs("*"),
	"provider": predict.Set(config.Providers),
	"charts":   predict.Set{"true", "false"},
}

// Completion describes the savesim command line for shell completion.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command, len(Commands)),
		Flags: map[string]complete.Predictor{"v": predict.Nothing},
	}
	for _, c := range Commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs.VisitAll(func(fl *flag.Flag) {
			if p, ok := predictors[fl.Name]; ok {
				sub.Flags[fl.Name] = p
				return
			}
			sub.Flags[fl.Name] = predict.Something
		})
		root.Sub[c.Name()] = sub
	}
	if topics, err := docs.GetAllTopics(); err == nil {
		root.Sub["topic"].Args = predict.Set(topics)
	}
	return root
}
