package main

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/antarray"
	"github.com/wiless/antarray/pattern"
	"github.com/wiless/vlib"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Report is the JSON dump of one run. Masked samples hold the floor value
// and are false in Visible.
type Report struct {
	Config    antarray.Config    `json:"config"`
	Rows      int                `json:"rows"`
	Cols      int                `json:"cols"`
	RowAxis   []float64          `json:"rowAxis"`
	ColAxis   []float64          `json:"colAxis"`
	PatternDb []float64          `json:"patternDb"`
	Visible   []bool             `json:"visible"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
	WeightsRe []float64          `json:"weightsRe"`
	WeightsIm []float64          `json:"weightsIm"`
}

func newReport(cfg antarray.Config, r antarray.Result, db vlib.VectorF, floorDb float64, m *pattern.Metrics) Report {
	rep := Report{
		Config:    cfg,
		Rows:      r.Rows,
		Cols:      r.Cols,
		RowAxis:   r.Grid.RowAxis,
		ColAxis:   r.Grid.ColAxis,
		PatternDb: masked(db, floorDb),
		Visible:   r.Visible,
		WeightsRe: vlib.NewVectorF(len(r.Weights)),
		WeightsIm: vlib.NewVectorF(len(r.Weights)),
	}
	for i, w := range r.Weights {
		rep.WeightsRe[i], rep.WeightsIm[i] = real(w), imag(w)
	}
	if m != nil {
		rep.Metrics = make(map[string]float64)
		for k, v := range metricFields(*m) {
			if !math.IsNaN(v) {
				rep.Metrics[k] = v
			}
		}
	}
	return rep
}

func metricFields(m pattern.Metrics) map[string]float64 {
	return map[string]float64{
		"peakDeg":      m.PeakDeg,
		"peakDb":       m.PeakDb,
		"halfPowerDeg": m.HalfPowerDeg,
		"nullLeftDeg":  m.NullLeftDeg,
		"nullRightDeg": m.NullRightDeg,
		"sidelobeDb":   m.SidelobeDb,
	}
}

func masked(db vlib.VectorF, floorDb float64) vlib.VectorF {
	result := vlib.NewVectorF(len(db))
	for i, v := range db {
		if math.IsNaN(v) {
			v = floorDb
		}
		result[i] = v
	}
	return result
}

// ExportMatlab writes a .m script that recreates the pattern and plots it,
// the way RunAAS dumps antenna gains.
func ExportMatlab(fname string, r antarray.Result, db vlib.VectorF) {
	var matlab vlib.Matlab
	matlab.SetDefaults()
	matlab.SetFile(fname)
	matlab.Silent = true

	xpos, ypos := vlib.NewVectorF(len(r.Positions)), vlib.NewVectorF(len(r.Positions))
	for i, p := range r.Positions {
		xpos[i], ypos[i] = p.X, p.Y
	}
	matlab.Export("Weights", r.Weights)
	matlab.Export("Xpos", xpos)
	matlab.Export("Ypos", ypos)
	matlab.Export("N", len(r.Positions))
	matlab.Export("RowAxis", vlib.VectorF(r.Grid.RowAxis))
	matlab.Export("ColAxis", vlib.VectorF(r.Grid.ColAxis))
	matlab.Export("AFdB", db)
	matlab.Command(fmt.Sprintf("\nAFdB=reshape(AFdB,%d,%d)';", r.Cols, r.Rows))
	matlab.Command("figure;")
	matlab.Command("plot(Xpos,Ypos,'r*');")
	matlab.Command("grid on;")
	matlab.Command("figure;")
	switch {
	case r.Cols == 1:
		matlab.Command("plot(RowAxis,AFdB,'k-');")
	case r.Rows == 1:
		matlab.Command("plot(ColAxis,AFdB,'k-');")
	default:
		matlab.Command("imagesc(ColAxis,RowAxis,AFdB);colorbar;")
	}
	matlab.Command("grid on;")
	matlab.Close()
}

// SavePNG plots a cut as a line and a 2D grid as a heat map.
func SavePNG(fname string, r antarray.Result, db vlib.VectorF, floorDb float64) error {
	p := plot.New()
	p.Y.Label.Text = "dB"
	db = masked(db, floorDb)

	if axis, err := r.Axis(); err == nil {
		p.Title.Text = "Array factor"
		p.X.Label.Text = "angle (deg)"
		xys := make(plotter.XYs, len(axis))
		for i := range axis {
			xys[i].X, xys[i].Y = axis[i], db[i]
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return errors.Wrap(err, "plot line")
		}
		p.Add(line)
	} else {
		p.Title.Text = "Array factor (dB)"
		p.X.Label.Text = "elevation (deg)"
		p.Y.Label.Text = "azimuth (deg)"
		g := dbGrid{db: db, rows: r.Rows, cols: r.Cols, x: r.Grid.ColAxis, y: r.Grid.RowAxis}
		p.Add(plotter.NewHeatMap(g, palette.Heat(16, 1)))
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, fname); err != nil {
		return errors.Wrapf(err, "saving %s", fname)
	}
	return nil
}

// dbGrid adapts a row-major dB grid to plotter.GridXYZ, columns along x.
type dbGrid struct {
	db         vlib.VectorF
	rows, cols int
	x, y       []float64
}

func (g dbGrid) Dims() (c, r int)   { return g.cols, g.rows }
func (g dbGrid) Z(c, r int) float64 { return g.db[r*g.cols+c] }
func (g dbGrid) X(c int) float64    { return g.x[c] }
func (g dbGrid) Y(r int) float64    { return g.y[r] }

// WriteOutputs writes every enabled output of a run into outdir.
func WriteOutputs(outdir string, app AppConfig, cfg antarray.Config, r antarray.Result) error {
	db, err := r.Db(app.FloorDb)
	if err != nil {
		return err
	}
	var metrics *pattern.Metrics
	if m, err := r.Metrics(app.FloorDb); err == nil {
		metrics = &m
		log.WithFields(log.Fields{
			"peak":      m.PeakDeg,
			"hpbw":      m.HalfPowerDeg,
			"nullLeft":  m.NullLeftDeg,
			"nullRight": m.NullRightDeg,
			"sll":       m.SidelobeDb,
		}).Info("pattern metrics")
	} else {
		log.WithError(err).Debug("no cut metrics")
	}

	base := filepath.Join(outdir, app.Name)
	if app.Matlab {
		ExportMatlab(base+".m", r, db)
		log.WithField("file", base+".m").Info("matlab script written")
	}
	if app.JSON {
		vlib.SaveStructure(newReport(cfg, r, db, app.FloorDb, metrics), base+".json", true)
		log.WithField("file", base+".json").Info("report written")
	}
	if app.PNG {
		if err := SavePNG(base+".png", r, db, app.FloorDb); err != nil {
			return err
		}
		log.WithField("file", base+".png").Info("plot written")
	}
	return nil
}
