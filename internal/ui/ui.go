// Package ui hosts an overlay session in a shiny window: it turns window
// events into session calls and paints frames off the event goroutine.
package ui

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"

	"github.com/example/snipshot/internal/overlay"
	"github.com/example/snipshot/internal/render"
)

// frameDropThreshold caps how many in-flight paints a newer frame may
// cancel in a row, so a steady stream of input still produces output.
const frameDropThreshold = 3

// Options configure the overlay window.
type Options struct {
	Title string
}

// closeEvent ends the loop from outside the window.
type closeEvent struct{}

var mainFn = driver.Main

// Run shows s in a window sized to its panel and processes events until
// the session ends, the window is closed or ctx is done. Closing the
// window counts as a cancel. base is the captured bitmap.
func Run(ctx context.Context, s *overlay.Session, base image.Image, p *render.Painter, opts Options) (overlay.Outcome, error) {
	if opts.Title == "" {
		opts.Title = "snipshot"
	}
	var runErr error
	mainFn(func(scr screen.Screen) {
		runErr = loop(ctx, scr, s, base, p, opts)
	})
	if runErr != nil {
		return overlay.Pending, runErr
	}
	if !s.Done() {
		return overlay.Cancelled, nil
	}
	return s.Outcome(), nil
}

func loop(ctx context.Context, scr screen.Screen, s *overlay.Session, base image.Image, p *render.Painter, opts Options) error {
	panel := s.Panel()
	w, err := scr.NewWindow(&screen.NewWindowOptions{Width: panel.X, Height: panel.Y, Title: opts.Title})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()

	stop := context.AfterFunc(ctx, func() { w.Send(closeEvent{}) })
	defer stop()

	frames := newFrameQueue(scr, w, base, p)
	defer frames.close()

	for {
		switch e := w.NextEvent().(type) {
		case closeEvent:
			return ctx.Err()
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return nil
			}
		case paint.Event:
			frames.push(s.Frame())
		case error:
			log.Printf("window: %v", e)
		default:
			if apply(s, e) {
				if s.Done() {
					return nil
				}
				w.Send(paint.Event{})
			}
		}
	}
}

// frameQueue paints the newest requested frame on its own goroutine.
// A new frame cancels the one being painted, up to frameDropThreshold
// times in a row.
type frameQueue struct {
	scr     screen.Screen
	w       screen.Window
	base    image.Image
	painter *render.Painter

	frames chan overlay.Frame
	done   chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	drops  int
}

func newFrameQueue(scr screen.Screen, w screen.Window, base image.Image, p *render.Painter) *frameQueue {
	q := &frameQueue{
		scr:     scr,
		w:       w,
		base:    base,
		painter: p,
		frames:  make(chan overlay.Frame, 1),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *frameQueue) push(f overlay.Frame) {
	q.mu.Lock()
	if q.cancel != nil && q.drops < frameDropThreshold {
		q.cancel()
		q.drops++
	}
	q.mu.Unlock()
	select {
	case q.frames <- f:
	default:
		select {
		case <-q.frames:
		default:
		}
		q.frames <- f
	}
}

func (q *frameQueue) run() {
	defer close(q.done)
	for f := range q.frames {
		ctx, cancel := context.WithCancel(context.Background())
		q.mu.Lock()
		q.cancel = cancel
		q.mu.Unlock()

		err := q.draw(ctx, f)

		q.mu.Lock()
		q.cancel = nil
		if err == nil {
			q.drops = 0
		}
		q.mu.Unlock()
		cancel()
	}
}

func (q *frameQueue) draw(ctx context.Context, f overlay.Frame) error {
	if f.Panel.X <= 0 || f.Panel.Y <= 0 {
		return nil
	}
	b, err := q.scr.NewBuffer(f.Panel)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return err
	}
	defer b.Release()
	if err := q.painter.Paint(ctx, b.RGBA(), q.base, f); err != nil {
		return err
	}
	q.w.Upload(image.Point{}, b, b.Bounds())
	q.w.Publish()
	return nil
}

// close waits for queued frames to be painted and stops the painter.
func (q *frameQueue) close() {
	close(q.frames)
	<-q.done
}
