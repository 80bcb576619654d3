package imagegen

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/abhisek/tohu/internal/logger"
)

// Temperature is sent with every image request. It sits above the text
// temperature: visual variety is welcome where textual structure is not.
const Temperature = 0.7

// Result is one rendered picture.
type Result struct {
	DataURI     string
	MIMEType    string
	Placeholder bool
}

// Options tune a Client.
type Options struct {
	// RPS caps outbound calls per second. Zero disables the limiter.
	RPS float64

	// PlaceholderFormat is FormatSVG or FormatPNG.
	PlaceholderFormat string

	// Timeout bounds each outbound call. Zero leaves only the caller's deadline.
	Timeout time.Duration

	Log *logger.Logger
}

// Client renders image instructions to data URIs and never fails.
type Client struct {
	gen     Generator
	limiter *rate.Limiter
	format  string
	timeout time.Duration
	log     *logger.Logger
}

// NewClient wraps gen. A nil gen makes every Render a placeholder.
func NewClient(gen Generator, opts Options) *Client {
	c := &Client{
		gen:     gen,
		format:  opts.PlaceholderFormat,
		timeout: opts.Timeout,
		log:     logger.OrNop(opts.Log).With("component", "imagegen"),
	}
	if c.format == "" {
		c.format = FormatSVG
	}
	if opts.RPS > 0 {
		burst := int(opts.RPS)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	return c
}

// ModelID names the backing model, or "placeholder".
func (c *Client) ModelID() string {
	if c.gen == nil {
		return "placeholder"
	}
	return c.gen.ModelID()
}

// Render generates one picture for prompt. label is used for logging and
// for the placeholder text. Any failure, including an expired context,
// yields a placeholder.
func (c *Client) Render(ctx context.Context, role, prompt, label string, seed int32) Result {
	log := c.log.With("role", role, "label", label)
	start := time.Now()

	img, err := c.generate(ctx, prompt, seed)
	if err != nil {
		ph := Placeholder(label, c.format)
		log.Warn("image generation failed, using placeholder",
			"placeholder", true,
			"mime", ph.MIMEType,
			"duration", time.Since(start).Round(time.Millisecond),
			"error", err.Error(),
		)
		return Result{DataURI: ph.DataURI(), MIMEType: ph.MIMEType, Placeholder: true}
	}

	log.Info("image generated",
		"mime", img.MIMEType,
		"bytes", len(img.Data),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return Result{DataURI: img.DataURI(), MIMEType: img.MIMEType}
}

func (c *Client) generate(ctx context.Context, prompt string, seed int32) (img *Image, err error) {
	if c.gen == nil {
		return nil, fmt.Errorf("no image provider configured")
	}

	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("image provider panic: %v", r)
		}
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	img, err = c.gen.Generate(ctx, Request{Prompt: prompt, Seed: seed, Temperature: Temperature})
	if err != nil {
		return nil, err
	}
	if img == nil || len(img.Data) == 0 {
		return nil, ErrNoImage
	}
	if img.MIMEType == "" {
		img.MIMEType = sniffMIME(img.Data)
	}
	return img, nil
}
