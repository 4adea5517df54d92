package scan

import (
	"context"
	"fmt"
	"image"
	"io/fs"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"qrattend/internal/attendance"
	"qrattend/internal/decode"
	"qrattend/internal/device"
	"qrattend/internal/metrics"
	"qrattend/internal/notify"
	"qrattend/internal/qr"
)

// Scan sources, used as metric labels.
const (
	SourceCamera = "camera"
	SourceFile   = "file"
	SourceImage  = "image"
	SourceText   = "text"
)

// ImageDecoder reads barcode text from a still image.
type ImageDecoder interface {
	Decode(img image.Image) (string, error)
}

// Submitter records one attendance row remotely.
type Submitter interface {
	Submit(ctx context.Context, row attendance.Row) error
}

// Options wires an Orchestrator.
type Options struct {
	// Context bounds background submissions; cancelling it aborts them.
	Context   context.Context
	Scanner   Scanner
	Decoder   ImageDecoder
	Submitter Submitter
	Notifier  notify.Notifier
	Metrics   *metrics.Metrics

	Assets    fs.FS
	TestImage string

	DeviceMAC func() string
	Now       func() time.Time
}

// Ticket identifies an accepted scan whose submission runs in the background.
type Ticket struct {
	ScanID string
	Row    attendance.Row
}

// Orchestrator turns scans into submitted attendance rows.
type Orchestrator struct {
	opts Options
	wg   sync.WaitGroup
}

// New fills defaults: background context, log notifier, system MAC, time.Now.
func New(opts Options) *Orchestrator {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Log{}
	}
	if opts.DeviceMAC == nil {
		opts.DeviceMAC = device.Lookup{}.MAC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Orchestrator{opts: opts}
}

// ScanCamera reads one code from the scanner and processes it.
func (o *Orchestrator) ScanCamera(ctx context.Context) (Ticket, error) {
	text, err := o.opts.Scanner.Scan(ctx)
	if err != nil {
		if Category(err) == CategoryScanCancelled {
			o.opts.Metrics.ScanObserved(SourceCamera, "cancelled")
			o.notify(ctx, "", notify.KindScanCancelled, err, "no QR content was read")
			return Ticket{}, err
		}
		o.opts.Metrics.ScanObserved(SourceCamera, "decode-failed")
		o.notify(ctx, "", notify.KindDecodeFailed, err, err.Error())
		return Ticket{}, err
	}
	return o.handle(ctx, SourceCamera, text)
}

// ScanFile decodes a bundled image; an empty path means the test image.
func (o *Orchestrator) ScanFile(ctx context.Context, path string) (Ticket, error) {
	if path == "" {
		path = o.opts.TestImage
	}
	if o.opts.Assets == nil {
		err := fmt.Errorf("no asset directory configured for %s", path)
		o.notify(ctx, "", notify.KindDecodeFailed, err, err.Error())
		return Ticket{}, err
	}
	img, err := decode.LoadImage(o.opts.Assets, path)
	if err != nil {
		o.opts.Metrics.ScanObserved(SourceFile, "decode-failed")
		o.notify(ctx, "", notify.KindDecodeFailed, err, err.Error())
		return Ticket{}, err
	}
	return o.scanImage(ctx, SourceFile, img)
}

// ScanImage decodes an already loaded image.
func (o *Orchestrator) ScanImage(ctx context.Context, img image.Image) (Ticket, error) {
	return o.scanImage(ctx, SourceImage, img)
}

// HandleText processes text decoded elsewhere, e.g. by a phone camera app.
func (o *Orchestrator) HandleText(ctx context.Context, raw string) (Ticket, error) {
	return o.handle(ctx, SourceText, raw)
}

// Wait blocks until every background submission has finished.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

func (o *Orchestrator) scanImage(ctx context.Context, source string, img image.Image) (Ticket, error) {
	text, err := o.opts.Decoder.Decode(img)
	if err != nil {
		o.opts.Metrics.ScanObserved(source, "decode-failed")
		o.notify(ctx, "", notify.KindDecodeFailed, err, "could not decode a QR code from the image")
		return Ticket{}, err
	}
	return o.handle(ctx, source, text)
}

func (o *Orchestrator) handle(ctx context.Context, source, raw string) (Ticket, error) {
	scanID := uuid.NewString()

	fields, err := qr.Parse(raw)
	if err != nil {
		log.Printf("scan %s: rejected QR content %q", scanID, raw)
		o.opts.Metrics.ScanObserved(source, "malformed")
		o.notify(ctx, scanID, notify.KindMalformed, err, "invalid QR: expected school, student id and name")
		return Ticket{}, err
	}
	o.opts.Metrics.ScanObserved(source, "parsed")

	row := attendance.NewRow(fields, o.opts.Now(), o.opts.DeviceMAC())
	ticket := Ticket{ScanID: scanID, Row: row}

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		o.submit(ticket)
	}()
	return ticket, nil
}

func (o *Orchestrator) submit(t Ticket) {
	ctx := o.opts.Context
	started := time.Now()
	err := o.opts.Submitter.Submit(ctx, t.Row)
	took := time.Since(started)

	if err != nil {
		category := Category(err)
		log.Printf("scan %s: submission failed after %s: %v", t.ScanID, took.Round(time.Millisecond), err)
		o.opts.Metrics.SubmissionObserved(category, took)
		o.notify(ctx, t.ScanID, notify.KindSubmitFailed, err, err.Error())
		return
	}
	o.opts.Metrics.SubmissionObserved("ok", took)
	o.notify(ctx, t.ScanID, notify.KindSubmitSucceeded, nil,
		fmt.Sprintf("attendance recorded for %s (%s)", t.Row.StudentName, t.Row.StudentID))
}

func (o *Orchestrator) notify(ctx context.Context, scanID string, kind notify.Kind, cause error, msg string) {
	n := notify.Notification{
		ScanID:  scanID,
		Kind:    kind,
		Message: msg,
		At:      o.opts.Now(),
	}
	if cause != nil {
		n.Category = Category(cause)
	}
	if err := o.opts.Notifier.Notify(ctx, n); err != nil {
		log.Printf("notify %s: %v", kind, err)
	}
}
