package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wiless/antarray"
)

const rectYAML = `
type: rect
sizex: 8
sizey: 4
spacingx: 0.5
spacingy: 0.5
element:
  kind: cosine
  exponent: 1.5
beam:
  az: 15
  el: -10
  window:
    name: chebyshev
    sll: 35
grid:
  azmin: -60
  azmax: 60
  azstep: 2
  elmin: -30
  elmax: 30
  elstep: 2
output:
  name: rect
  floor: -50
  matlab: false
log:
  level: warn
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	fname := filepath.Join(dir, name)
	if err := os.WriteFile(fname, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return fname
}

func TestReadAppConfig(t *testing.T) {
	dir := t.TempDir()
	fname := writeFile(t, dir, "rect.yaml", rectYAML)

	app, cfg, err := ReadAppConfig(fname, "")
	if err != nil {
		t.Fatal(err)
	}
	if app.Name != "rect" || app.FloorDb != -50 || app.Matlab || !app.PNG {
		t.Errorf("app config %+v", app)
	}
	if cfg.Type != antarray.TypeRect || cfg.SizeX != 8 || cfg.SizeY != 4 {
		t.Errorf("array %+v", cfg)
	}
	if cfg.Beam.AzimuthDeg != 15 || cfg.Beam.Window.Name != "chebyshev" || cfg.Beam.Window.SidelobeDb != 35 {
		t.Errorf("beam %+v", cfg.Beam)
	}
	if cfg.Element.Kind != "cosine" || cfg.Element.Exponent != 1.5 {
		t.Errorf("element %+v", cfg.Element)
	}
}

func TestReadAppConfigDefaults(t *testing.T) {
	app, cfg, err := ReadAppConfig("", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if app.Name != "afpattern" || cfg.Type != antarray.TypeLinear || cfg.Size != 8 {
		t.Errorf("defaults %+v %+v", app, cfg)
	}
	if _, _, err := ReadAppConfig(filepath.Join(t.TempDir(), "missing.yaml"), ""); err == nil {
		t.Error("missing explicit config file accepted")
	}
}

func TestWriteOutputs(t *testing.T) {
	in, out := t.TempDir(), t.TempDir()
	fname := writeFile(t, in, "rect.yaml", rectYAML)
	app, cfg, err := ReadAppConfig(fname, "")
	if err != nil {
		t.Fatal(err)
	}
	r, err := cfg.Run()
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteOutputs(out, app, cfg, r); err != nil {
		t.Fatal(err)
	}

	cut := antarray.DefaultConfig()
	r, err = cut.Run()
	if err != nil {
		t.Fatal(err)
	}
	app.Name = "cut"
	if err := WriteOutputs(out, app, cut, r); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"rect.png", "rect.json", "cut.png", "cut.json"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	if err := ensureDir(dir); err != nil {
		t.Fatal(err)
	}
	file := writeFile(t, dir, "x", "")
	if err := ensureDir(file); err == nil {
		t.Error("file accepted as output directory")
	}
}
