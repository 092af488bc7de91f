// Command insurecost loads an insurance dataset, prints its descriptive
// statistics, fits a linear cost model over (age, bmi, smoker) and optionally
// predicts the charges for one person.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"golang.org/x/sync/errgroup"

	"github.com/YuminosukeSato/insurecost/dataset"
	"github.com/YuminosukeSato/insurecost/features"
	"github.com/YuminosukeSato/insurecost/linear"
	"github.com/YuminosukeSato/insurecost/pkg/errors"
	"github.com/YuminosukeSato/insurecost/pkg/log"
	"github.com/YuminosukeSato/insurecost/report"
)

const appName = "insurecost"

type config struct {
	DataPath  string
	ModelIn   string
	ModelOut  string
	PlotPath  string
	LogLevel  string
	LogFormat string

	Predict bool
	Age     int
	BMI     float64
	Smoker  string
}

func main() {
	cfg, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(2)
	}
	if err := log.SetupLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(2)
	}
	if err := run(cfg, os.Stdout); err != nil {
		log.GetLoggerWithName(appName).Error("insurecost terminated with an error", err,
			log.ErrorCodeKey, log.ErrorCode(err))
		os.Exit(1)
	}
}

func parseArgs(args []string, usage io.Writer) (*config, error) {
	app := kingpin.New(appName, "Descriptive statistics and a linear cost model for insurance charges.")
	app.UsageWriter(usage)
	app.ErrorWriter(usage)

	cfg := &config{}
	app.Flag("data", "CSV file with an age,sex,bmi,children,smoker,region,charges header").
		Short('d').StringVar(&cfg.DataPath)
	app.Flag("model-in", "Load a previously exported model instead of fitting one").StringVar(&cfg.ModelIn)
	app.Flag("model-out", "Export the fitted model as JSON to this path").StringVar(&cfg.ModelOut)
	app.Flag("plot", "Write an actual-vs-predicted scatter plot (png, svg or pdf)").StringVar(&cfg.PlotPath)
	app.Flag("log.level", "Logging level: debug, info, warn, error").Default("info").
		EnumVar(&cfg.LogLevel, "debug", "info", "warn", "error")
	app.Flag("log.format", "Logging format: console or json").Default(log.FormatConsole).
		EnumVar(&cfg.LogFormat, log.FormatConsole, log.FormatJSON)

	app.Flag("age", "Age of the person to predict for").IsSetByUser(&cfg.Predict).IntVar(&cfg.Age)
	app.Flag("bmi", "Body-mass index of the person to predict for").Default("25").Float64Var(&cfg.BMI)
	app.Flag("smoker", `Smoker status of the person to predict for: "yes" or "no"`).Default(features.SmokerNo).
		StringVar(&cfg.Smoker)

	if _, err := app.Parse(args); err != nil {
		return nil, err
	}
	if cfg.DataPath == "" && cfg.ModelIn == "" {
		return nil, errors.New("one of --data or --model-in is required")
	}
	if cfg.DataPath == "" && cfg.PlotPath != "" {
		return nil, errors.New("--plot needs --data")
	}
	return cfg, nil
}

func run(cfg *config, stdout io.Writer) error {
	var (
		ds      *dataset.Dataset
		summary dataset.Summary
		model   *linear.FittedModel
		err     error
	)

	if cfg.DataPath != "" {
		if ds, err = dataset.LoadFile(cfg.DataPath); err != nil {
			return err
		}
	}

	// Statistics and fitting only read the dataset, so they run side by side.
	var g errgroup.Group
	if ds != nil {
		g.Go(func() error {
			var err error
			summary, err = ds.Describe()
			return err
		})
	}
	g.Go(func() error {
		var err error
		model, err = obtainModel(cfg, ds)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if ds != nil {
		if err := report.WriteSummary(stdout, summary); err != nil {
			return err
		}
		fmt.Fprintln(stdout)
	}
	if err := report.WriteModel(stdout, model); err != nil {
		return err
	}

	if ds != nil {
		eval, preds, err := report.Evaluate(model, ds)
		if err != nil {
			return err
		}
		if err := report.WriteEvaluation(stdout, eval); err != nil {
			return err
		}
		if cfg.PlotPath != "" {
			if err := report.SavePlot(cfg.PlotPath, ds.Charges(), preds); err != nil {
				return err
			}
			log.GetLoggerWithName(appName).Info("plot written", "path", cfg.PlotPath)
		}
	}

	if cfg.ModelOut != "" {
		if err := exportModel(cfg.ModelOut, model); err != nil {
			return err
		}
	}

	if cfg.Predict {
		fmt.Fprintln(stdout)
		var result report.PredictionResult
		v, err := features.Build(cfg.Age, cfg.BMI, cfg.Smoker)
		if err != nil {
			result.Err = err
		} else {
			result = report.Predict(model, v)
		}
		if err := report.WritePrediction(stdout, result); err != nil {
			return err
		}
		if !result.OK() {
			return result.Err
		}
	}
	return nil
}

func obtainModel(cfg *config, ds *dataset.Dataset) (*linear.FittedModel, error) {
	if cfg.ModelIn != "" {
		f, err := os.Open(cfg.ModelIn)
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", cfg.ModelIn)
		}
		defer f.Close()
		return linear.LoadJSON(f)
	}

	matrix, targets, err := ds.TrainingSet()
	if err != nil {
		return nil, err
	}
	return linear.Fit(matrix, targets, linear.WithFeatureNames(features.NamesSlice()...))
}

func exportModel(path string, m *linear.FittedModel) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing %s", path)
		}
	}()
	return m.ExportJSON(f)
}
