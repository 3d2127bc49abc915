// Command afpattern evaluates the far field pattern of the antenna array
// described in config.{yaml,json,toml} and writes it as a MATLAB script, a
// JSON report and a PNG plot.
package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	configFile string
	indir      string
	outdir     string
	verbose    bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "config file, default config.{yaml,json,toml} in -indir")
	flag.StringVar(&indir, "indir", ".", "Directory where the config file is read from")
	flag.StringVar(&outdir, "out", ".", "Directory where all the output files are generated")
	flag.BoolVar(&verbose, "v", false, "Print debug logs")
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.WithError(err).Error("afpattern failed")
		os.Exit(1)
	}
}

func run() error {
	app, cfg, err := ReadAppConfig(configFile, indir)
	if err != nil {
		return err
	}
	if err := ensureDir(outdir); err != nil {
		return err
	}

	result, err := cfg.Run()
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"type":       cfg.Type,
		"elements":   len(result.Positions),
		"directions": result.Grid.Len(),
	}).Info("pattern evaluated")
	return WriteOutputs(outdir, app, cfg, result)
}

func ensureDir(dir string) error {
	finfo, err := os.Stat(dir)
	if err != nil {
		log.WithField("dir", dir).Info("creating output directory")
		return os.MkdirAll(dir, os.ModeDir|os.ModePerm)
	}
	if !finfo.IsDir() {
		abs, _ := filepath.Abs(dir)
		return errors.Errorf("output %s is not a directory", abs)
	}
	return nil
}
