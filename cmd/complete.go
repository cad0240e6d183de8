package cmd

import (
	"flag"
	"io"

	"github.com/etnz/dashboard"
	"github.com/etnz/dashboard/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors complete the values of the flags of that name, in any subcommand.
var flagPredictors = map[string]complete.Predictor{
	"r":        predict.Set(rangeCodes()),
	"m":        predict.Set{"value", "return", "vsindex"},
	"s":        predict.Set(symbols()),
	"by":       predict.Set{"type", "sector", "region"},
	"xlsx":     predict.Files("*.xlsx"),
	"source":   predict.Set{"synthetic", "live", "live+synthetic"},
	"currency": predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
}

func rangeCodes() []string {
	var codes []string
	for _, id := range dashboard.Ranges() {
		codes = append(codes, id.String())
	}
	return codes
}

func symbols() []string {
	var s []string
	for _, a := range dashboard.Search("", 0) {
		s = append(s, a.Symbol)
	}
	return s
}

func topicNames() []string {
	topics, _ := docs.GetAllTopics()
	return topics
}

// Completion returns the shell completion of the dash command line.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: flags(flag.CommandLine),
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	for _, e := range commands {
		fs := flag.NewFlagSet(e.cmd.Name(), flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		e.cmd.SetFlags(fs)
		root.Sub[e.cmd.Name()] = &complete.Command{Flags: flags(fs)}
	}
	if quote, ok := root.Sub["quote"]; ok {
		quote.Args = predict.Set(symbols())
	}
	if topics, ok := root.Sub["topic"]; ok {
		topics.Args = predict.Set(topicNames())
	}
	return root
}

// flags returns the predictors of the flags of fs.
func flags(fs *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	fs.VisitAll(func(f *flag.Flag) {
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[f.Name] = predict.Nothing
			return
		}
		if p, ok := flagPredictors[f.Name]; ok {
			m[f.Name] = p
			return
		}
		m[f.Name] = predict.Something
	})
	return m
}
