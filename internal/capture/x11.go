//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"

	"github.com/example/snipshot/internal/geom"
	"github.com/example/snipshot/internal/windows"
)

type x11Output struct {
	name    string
	rect    image.Rectangle
	primary bool
}

func x11Connect() (*xgb.Conn, *xproto.ScreenInfo, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, nil, fmt.Errorf("connect X server: %w", err)
	}
	setup := xproto.Setup(conn)
	if setup == nil {
		conn.Close()
		return nil, nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return nil, nil, fmt.Errorf("xproto screen unavailable")
	}
	return conn, screen, nil
}

// x11PointerMonitor returns the CRTC under the pointer, else the primary
// output, else the first one.
func x11PointerMonitor() (Monitor, error) {
	conn, screen, err := x11Connect()
	if err != nil {
		return Monitor{}, err
	}
	defer conn.Close()

	outputs, err := fetchOutputs(conn, screen.Root)
	if err != nil {
		return Monitor{}, err
	}
	var pointer *image.Point
	if reply, err := xproto.QueryPointer(conn, screen.Root).Reply(); err == nil {
		p := image.Pt(int(reply.RootX), int(reply.RootY))
		pointer = &p
	}
	o, ok := pickOutput(outputs, pointer)
	if !ok {
		return Monitor{}, ErrNoMonitor
	}
	return monitorFromRect(o.name, o.rect), nil
}

func pickOutput(outputs []x11Output, pointer *image.Point) (x11Output, bool) {
	if len(outputs) == 0 {
		return x11Output{}, false
	}
	if pointer != nil {
		for _, o := range outputs {
			if pointer.In(o.rect) {
				return o, true
			}
		}
	}
	for _, o := range outputs {
		if o.primary {
			return o, true
		}
	}
	return outputs[0], true
}

func x11Monitors() ([]Monitor, error) {
	conn, screen, err := x11Connect()
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	outputs, err := fetchOutputs(conn, screen.Root)
	if err != nil {
		return nil, err
	}
	if len(outputs) == 0 {
		return nil, ErrNoMonitor
	}
	out := make([]Monitor, 0, len(outputs))
	for _, o := range outputs {
		out = append(out, monitorFromRect(o.name, o.rect))
	}
	return out, nil
}

func fetchOutputs(conn *xgb.Conn, root xproto.Window) ([]x11Output, error) {
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	res, err := randr.GetScreenResources(conn, root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	primaryOutput := randr.Output(0)
	if primary, err := randr.GetOutputPrimary(conn, root).Reply(); err == nil {
		primaryOutput = primary.Output
	}
	var outputs []x11Output
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		outputs = append(outputs, x11Output{
			name:    strings.TrimSpace(string(info.Name)),
			rect:    image.Rect(int(crtc.X), int(crtc.Y), int(crtc.X)+int(crtc.Width), int(crtc.Y)+int(crtc.Height)),
			primary: output == primaryOutput,
		})
	}
	return outputs, nil
}

// x11Enumerator reads the EWMH client stacking list.
type x11Enumerator struct{}

func (x11Enumerator) Name() string { return "x11" }

func (x11Enumerator) List(ctx context.Context) ([]windows.Info, error) {
	conn, screen, err := x11Connect()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoWindows, err)
	}
	defer conn.Close()

	ids, err := stackingOrder(conn, screen.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoWindows, err)
	}
	hidden, _ := internAtom(conn, "_NET_WM_STATE_HIDDEN")

	out := make([]windows.Info, 0, len(ids))
	// The EWMH list is bottom to top.
	for i := len(ids) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		win := ids[i]
		if hidden != 0 && hasState(conn, win, hidden) {
			continue
		}
		info, err := describeWindow(conn, screen.Root, win)
		if err != nil || windows.IsDesktopComponent(info.ProcessName) {
			continue
		}
		out = append(out, info)
	}
	return out, nil
}

func stackingOrder(conn *xgb.Conn, root xproto.Window) ([]xproto.Window, error) {
	var reply *xproto.GetPropertyReply
	for _, name := range []string{"_NET_CLIENT_LIST_STACKING", "_NET_CLIENT_LIST"} {
		atom, err := internAtom(conn, name)
		if err != nil {
			return nil, err
		}
		reply, err = xproto.GetProperty(conn, false, root, atom, xproto.AtomWindow, 0, 1<<16).Reply()
		if err == nil && reply.Format == 32 && reply.ValueLen > 0 {
			break
		}
		reply = nil
	}
	if reply == nil {
		return nil, fmt.Errorf("window manager does not publish a client list")
	}
	ids := make([]xproto.Window, 0, reply.ValueLen)
	for i := 0; i < int(reply.ValueLen); i++ {
		ids = append(ids, xproto.Window(xgb.Get32(reply.Value[i*4:])))
	}
	return ids, nil
}

func hasState(conn *xgb.Conn, win xproto.Window, state xproto.Atom) bool {
	atom, err := internAtom(conn, "_NET_WM_STATE")
	if err != nil {
		return false
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, xproto.AtomAtom, 0, 64).Reply()
	if err != nil || reply.Format != 32 {
		return false
	}
	for i := 0; i < int(reply.ValueLen); i++ {
		if xproto.Atom(xgb.Get32(reply.Value[i*4:])) == state {
			return true
		}
	}
	return false
}

func describeWindow(conn *xgb.Conn, root, win xproto.Window) (windows.Info, error) {
	title := readUTF8Property(conn, win, "_NET_WM_NAME")
	if title == "" {
		title = readStringProperty(conn, win, "WM_NAME")
	}
	pid := readPID(conn, win)
	name := readExecutable(pid)
	if name == "" {
		name = readClassInstance(conn, win)
	}
	rect, err := windowRect(conn, root, win)
	if err != nil {
		return windows.Info{}, err
	}
	return windows.Info{
		ID:          fmt.Sprintf("0x%x", uint32(win)),
		Rect:        geom.FromImage(rect),
		ProcessName: name,
		PID:         int(pid),
		Title:       title,
	}, nil
}

func windowRect(conn *xgb.Conn, root, win xproto.Window) (image.Rectangle, error) {
	geo, err := xproto.GetGeometry(conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	trans, err := xproto.TranslateCoordinates(conn, win, root, 0, 0).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	border := int(geo.BorderWidth)
	x := int(trans.DstX) - border
	y := int(trans.DstY) - border
	return image.Rect(x, y, x+int(geo.Width)+border*2, y+int(geo.Height)+border*2), nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}

func readUTF8Property(conn *xgb.Conn, win xproto.Window, name string) string {
	atom, err := internAtom(conn, name)
	if err != nil {
		return ""
	}
	utf8, err := internAtom(conn, "UTF8_STRING")
	if err != nil {
		return ""
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, utf8, 0, 1<<16).Reply()
	if err != nil || reply.ValueLen == 0 {
		return ""
	}
	return strings.TrimRight(string(reply.Value), "\x00")
}

func readStringProperty(conn *xgb.Conn, win xproto.Window, name string) string {
	atom, err := internAtom(conn, name)
	if err != nil {
		return ""
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, xproto.AtomString, 0, 1<<16).Reply()
	if err != nil || reply.ValueLen == 0 {
		return ""
	}
	return strings.TrimRight(string(reply.Value), "\x00")
}

// readClassInstance returns the instance half of WM_CLASS.
func readClassInstance(conn *xgb.Conn, win xproto.Window) string {
	atom, err := internAtom(conn, "WM_CLASS")
	if err != nil {
		return ""
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, xproto.AtomString, 0, 64).Reply()
	if err != nil || reply.ValueLen == 0 {
		return ""
	}
	for _, p := range bytes.Split(reply.Value, []byte{0}) {
		if len(p) > 0 {
			return string(p)
		}
	}
	return ""
}

func readPID(conn *xgb.Conn, win xproto.Window) uint32 {
	atom, err := internAtom(conn, "_NET_WM_PID")
	if err != nil {
		return 0
	}
	reply, err := xproto.GetProperty(conn, false, win, atom, xproto.AtomCardinal, 0, 1).Reply()
	if err != nil || reply.Format != 32 || reply.ValueLen == 0 {
		return 0
	}
	return xgb.Get32(reply.Value)
}

// readExecutable resolves a pid to its command name through /proc.
func readExecutable(pid uint32) string {
	if pid == 0 {
		return ""
	}
	if data, err := os.ReadFile(fmt.Sprintf("/proc/%d/comm", pid)); err == nil {
		return strings.TrimSpace(string(data))
	}
	if exe, err := os.Readlink(fmt.Sprintf("/proc/%d/exe", pid)); err == nil {
		return filepath.Base(exe)
	}
	return ""
}
