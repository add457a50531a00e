package capture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"math"
	"strings"

	"github.com/godbus/dbus/v5"

	"github.com/example/snipshot/internal/geom"
)

type kscreenConfig struct {
	Outputs []kscreenOutput `json:"outputs"`
}

type kscreenOutput struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
	Pos     struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`
	Size struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"size"`
	Scale float64 `json:"scale"`
}

// Monitor queries. Tests replace these.
var (
	activeOutputName = kwinActiveOutput
	kscreenDoctor    = func(ctx context.Context) ([]byte, error) {
		return runCommand(ctx, "kscreen-doctor", "--json")
	}
	x11ActiveMonitor = x11PointerMonitor
)

// ActiveMonitor returns the monitor the user is working on: KWin's active
// output when running under Plasma, otherwise the X11 monitor under the
// pointer. It fails with ErrNoMonitor when neither is available.
func ActiveMonitor(ctx context.Context) (Monitor, error) {
	m, kdeErr := kdeMonitor(ctx)
	if kdeErr == nil {
		return m, nil
	}
	m, x11Err := x11ActiveMonitor()
	if x11Err == nil {
		return m, nil
	}
	return Monitor{}, fmt.Errorf("%w: %w", ErrNoMonitor, errors.Join(kdeErr, x11Err))
}

// Monitors lists every enabled output, for display purposes.
func Monitors(ctx context.Context) ([]Monitor, error) {
	data, err := kscreenDoctor(ctx)
	if err == nil {
		var cfg kscreenConfig
		if err = json.Unmarshal(data, &cfg); err == nil {
			var out []Monitor
			for _, o := range cfg.Outputs {
				if o.Enabled {
					out = append(out, o.monitor())
				}
			}
			if len(out) > 0 {
				return out, nil
			}
		}
	}
	if err != nil {
		log.Printf("capture: kscreen-doctor unavailable: %v", err)
	}
	return x11Monitors()
}

func kdeMonitor(ctx context.Context) (Monitor, error) {
	name, err := activeOutputName(ctx)
	if err != nil {
		return Monitor{}, fmt.Errorf("active output: %w", err)
	}
	data, err := kscreenDoctor(ctx)
	if err != nil {
		return Monitor{}, err
	}
	return parseKScreen(data, name)
}

// parseKScreen finds the enabled output called name in kscreen-doctor
// JSON. Positions are logical and sizes physical, so the logical geometry
// divides the size by the scale and the physical rectangle multiplies the
// position by it.
func parseKScreen(data []byte, name string) (Monitor, error) {
	var cfg kscreenConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Monitor{}, fmt.Errorf("kscreen-doctor output: %w", err)
	}
	for _, o := range cfg.Outputs {
		if o.Name == name && o.Enabled {
			return o.monitor(), nil
		}
	}
	return Monitor{}, fmt.Errorf("output %q not found or disabled", name)
}

func (o kscreenOutput) monitor() Monitor {
	scale := o.Scale
	if scale <= 0 {
		scale = 1
	}
	px := int(math.Round(float64(o.Pos.X) * scale))
	py := int(math.Round(float64(o.Pos.Y) * scale))
	return Monitor{
		Name: o.Name,
		Geometry: geom.R(
			float64(o.Pos.X),
			float64(o.Pos.Y),
			math.Round(float64(o.Size.Width)/scale),
			math.Round(float64(o.Size.Height)/scale),
		),
		Physical: image.Rect(px, py, px+o.Size.Width, py+o.Size.Height),
		Scale:    scale,
	}
}

func kwinActiveOutput(ctx context.Context) (string, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return "", fmt.Errorf("dbus connect: %w", err)
	}
	defer conn.Close()
	var name string
	err = conn.Object("org.kde.KWin", "/KWin").
		CallWithContext(ctx, "org.kde.KWin.activeOutputName", 0).
		Store(&name)
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("kwin reported no active output")
	}
	return name, nil
}

// monitorFromRect builds a scale-1 monitor from an X11 rectangle.
func monitorFromRect(name string, r image.Rectangle) Monitor {
	return Monitor{
		Name:     name,
		Geometry: geom.FromImage(r),
		Physical: r,
		Scale:    1,
	}
}
