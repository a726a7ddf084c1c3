package board

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/pinmap/pkg/errors"
)

type boardFile struct {
	Name        string           `toml:"name"`
	PackagePins int              `toml:"package_pins"`
	Canvas      canvasFile       `toml:"canvas"`
	Metrics     Metrics          `toml:"metrics,omitempty"`
	CPU         cpuFile          `toml:"cpu"`
	Modules     []moduleFile     `toml:"module"`
	Unrendered  []unrenderedFile `toml:"unrendered"`
	Ports       []portFile       `toml:"port"`
	Routes      []routeFile      `toml:"route,omitempty"`
}

type canvasFile struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type cpuFile struct {
	Top        float64 `toml:"top"`
	Left       float64 `toml:"left"`
	Width      float64 `toml:"width,omitempty"`
	LeftPorts  []int   `toml:"left_ports"`
	RightPorts []int   `toml:"right_ports"`
}

type moduleFile struct {
	Name   string    `toml:"name"`
	Chip   string    `toml:"chip,omitempty"`
	Top    float64   `toml:"top"`
	Left   float64   `toml:"left"`
	Facing string    `toml:"facing"`
	Pins   []pinFile `toml:"pins"`
}

type pinFile struct {
	Name string `toml:"name"`
	Kind string `toml:"kind"`
}

type unrenderedFile struct {
	Reason string `toml:"reason"`
	Pins   []int  `toml:"pins"`
}

type portFile struct {
	Index int           `toml:"index"`
	Pins  []portPinFile `toml:"pins"`
}

type portPinFile struct {
	Pin     int       `toml:"pin"`
	Package int       `toml:"package"`
	Signal  string    `toml:"signal,omitempty"`
	To      []refFile `toml:"to,omitempty"`
}

type refFile struct {
	Module string `toml:"module"`
	Pin    string `toml:"pin"`
}

type routeFile struct {
	Port  int    `toml:"port"`
	Pin   int    `toml:"pin"`
	Index int    `toml:"index,omitempty"`
	Path  string `toml:"path"`
}

// Load reads a board file from disk.
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "board file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	b, err := Decode(data)
	if err != nil {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInvalidBoard
		}
		return nil, errors.Wrap(code, err, "load %s", path)
	}
	return b, nil
}

// Decode parses a TOML board description. Keys the schema does not know
// are rejected. The result is structurally complete but not validated; call
// Validate before laying it out.
func Decode(data []byte) (*Board, error) {
	var f boardFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse board")
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidBoard, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return f.board()
}

func (f *boardFile) board() (*Board, error) {
	b := &Board{
		Name:        f.Name,
		PackagePins: f.PackagePins,
		Placements:  make(map[string]Placement, len(f.Modules)),
		CPU: CPUPlacement{
			Top:        f.CPU.Top,
			Left:       f.CPU.Left,
			Width:      f.CPU.Width,
			LeftPorts:  f.CPU.LeftPorts,
			RightPorts: f.CPU.RightPorts,
		},
		Canvas:  Canvas(f.Canvas),
		Metrics: f.Metrics,
	}
	if b.PackagePins == 0 {
		b.PackagePins = DefaultPackagePins
	}

	modules := make([]*Module, 0, len(f.Modules))
	for _, mf := range f.Modules {
		pins := make([]LogicalPin, 0, len(mf.Pins))
		for _, pf := range mf.Pins {
			kind, err := ParsePinKind(pf.Kind)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeUnknownPinKind, err, "module %s: pin %q", mf.Name, pf.Name)
			}
			pins = append(pins, LogicalPin{Name: pf.Name, Kind: kind})
		}
		m, err := NewModule(mf.Name, mf.Chip, pins...)
		if err != nil {
			return nil, err
		}
		facing, err := ParseFacing(mf.Facing)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "module %s", mf.Name)
		}
		modules = append(modules, m)
		b.Placements[m.Name] = Placement{Top: mf.Top, Left: mf.Left, Facing: facing}
	}
	catalog, err := NewCatalog(modules...)
	if err != nil {
		return nil, err
	}
	b.Catalog = catalog

	for _, uf := range f.Unrendered {
		b.Unrendered = append(b.Unrendered, UnrenderedGroup{Reason: uf.Reason, Pins: uf.Pins})
	}

	seenPorts := make(map[int]bool, len(f.Ports))
	for _, pf := range f.Ports {
		if seenPorts[pf.Index] {
			return nil, errors.New(errors.ErrCodeInvalidBoard, "port %d declared twice", pf.Index)
		}
		seenPorts[pf.Index] = true
		port := Port{Index: pf.Index, Entries: make([]PortEntry, 0, len(pf.Pins))}
		for _, pp := range pf.Pins {
			t, err := pp.target()
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidBoard, err, "port %d pin %d", pf.Index, pp.Pin)
			}
			port.Entries = append(port.Entries, PortEntry{PortPin: pp.Pin, Package: pp.Package, Target: t})
		}
		b.Ports = append(b.Ports, port)
	}

	for _, rf := range f.Routes {
		b.Routes = append(b.Routes, RouteSpec(rf))
	}
	return b, nil
}

func (pp portPinFile) target() (Target, error) {
	switch {
	case pp.Signal != "" && len(pp.To) > 0:
		return Target{}, errors.New(errors.ErrCodeInvalidBoard, "signal and to are mutually exclusive")
	case pp.Signal != "":
		return Unrendered(pp.Signal), nil
	case len(pp.To) == 1:
		return Single(PinRef(pp.To[0])), nil
	case len(pp.To) > 1:
		refs := make([]PinRef, len(pp.To))
		for i, r := range pp.To {
			refs[i] = PinRef(r)
		}
		return Multi(refs...), nil
	}
	return Target{}, errors.New(errors.ErrCodeInvalidBoard, "one of signal or to is required")
}

// Encode writes the board as TOML in the format Decode reads.
func Encode(w io.Writer, b *Board) error {
	enc := toml.NewEncoder(w)
	enc.Indent = ""
	if err := enc.Encode(fileOf(b)); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode board")
	}
	return nil
}

// Marshal returns the TOML encoding of the board.
func Marshal(b *Board) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fileOf(b *Board) *boardFile {
	f := &boardFile{
		Name:        b.Name,
		PackagePins: b.PackagePins,
		Canvas:      canvasFile(b.Canvas),
		Metrics:     b.Metrics,
		CPU: cpuFile{
			Top:        b.CPU.Top,
			Left:       b.CPU.Left,
			Width:      b.CPU.Width,
			LeftPorts:  b.CPU.LeftPorts,
			RightPorts: b.CPU.RightPorts,
		},
	}
	if b.Catalog != nil {
		for _, m := range b.Catalog.Modules() {
			p := b.Placements[m.Name]
			mf := moduleFile{Name: m.Name, Chip: m.Chip, Top: p.Top, Left: p.Left, Facing: p.Facing.String()}
			for _, pin := range m.Pins() {
				mf.Pins = append(mf.Pins, pinFile{Name: pin.Name, Kind: pin.Kind.String()})
			}
			f.Modules = append(f.Modules, mf)
		}
	}
	for _, g := range b.Unrendered {
		f.Unrendered = append(f.Unrendered, unrenderedFile(g))
	}
	for _, p := range b.Ports {
		pf := portFile{Index: p.Index}
		for _, e := range p.Entries {
			pp := portPinFile{Pin: e.PortPin, Package: e.Package}
			if e.Target.Kind == TargetUnrendered {
				pp.Signal = e.Target.Signal
			}
			for _, r := range e.Target.Refs() {
				pp.To = append(pp.To, refFile(r))
			}
			pf.Pins = append(pf.Pins, pp)
		}
		f.Ports = append(f.Ports, pf)
	}
	for _, r := range b.Routes {
		f.Routes = append(f.Routes, routeFile(r))
	}
	return f
}
