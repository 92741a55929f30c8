// Package loki is a minimal batching client for the Grafana Loki push API.
package loki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorReporter receives push failures. The caller must make sure reported
// errors do not loop back into the pusher.
type ErrorReporter interface {
	Error(msg string, args ...any)
}

type Config struct {

	// URL of the loki push endpoint, e.g. https://loki.example.com/loki/api/v1/push
	URL string `validate:"required"`

	// Labels added to every pushed line.
	Labels map[string]string

	// BatchMaxSize is the number of lines that forces a flush.
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the longest a line may sit unflushed.
	BatchMaxWait time.Duration `validate:"gte=1"`

	// Username and Password enable basic auth when non-empty.
	Username string
	Password string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 1000
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

type LogEntry struct {
	Level   string `json:"level"`
	Message string `json:"msg"`
	Caller  string `json:"caller,omitempty"`
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

// Pusher accumulates log lines and ships them in batches from a background
// goroutine. Stop flushes whatever is pending.
type Pusher struct {
	config   Config
	ctx      context.Context
	cancel   context.CancelFunc
	client   *http.Client
	entries  chan LogEntry
	batch    [][2]string
	done     sync.WaitGroup
	reporter ErrorReporter
}

func New(ctx context.Context, cfg Config, reporter ErrorReporter) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config:   cfg,
		ctx:      ctx,
		cancel:   cancel,
		client:   &http.Client{Timeout: 10 * time.Second},
		entries:  make(chan LogEntry, cfg.BatchMaxSize),
		batch:    make([][2]string, 0, cfg.BatchMaxSize),
		reporter: reporter,
	}

	p.done.Add(1)
	go p.run()
	return p, nil
}

// Push enqueues a line; it never blocks the caller beyond channel capacity.
func (p *Pusher) Push(entry LogEntry) error {
	select {
	case <-p.ctx.Done():
		return p.ctx.Err()
	case p.entries <- entry:
		return nil
	}
}

func (p *Pusher) Stop() {
	p.cancel()
	p.done.Wait()
}

func (p *Pusher) run() {
	defer p.done.Done()

	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			p.drain()
			p.flush()
			return
		case entry := <-p.entries:
			p.append(entry)
			if len(p.batch) >= p.config.BatchMaxSize {
				p.flush()
			}
		case <-ticker.C:
			p.flush()
		}
	}
}

func (p *Pusher) drain() {
	for {
		select {
		case entry := <-p.entries:
			p.append(entry)
		default:
			return
		}
	}
}

func (p *Pusher) append(entry LogEntry) {
	line, err := json.Marshal(entry)
	if err != nil {
		p.reporter.Error("failed to marshal log entry", "error", err)
		return
	}
	ts := strconv.FormatInt(time.Now().UnixNano(), 10)
	p.batch = append(p.batch, [2]string{ts, string(line)})
}

func (p *Pusher) flush() {
	if len(p.batch) == 0 {
		return
	}

	if err := p.send(); err != nil {
		p.reporter.Error("failed to push logs to loki", "error", err)
	}
	p.batch = p.batch[:0]
}

func (p *Pusher) send() error {
	payload, err := json.Marshal(pushRequest{
		Streams: []stream{{Stream: p.config.Labels, Values: p.batch}},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, p.config.URL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.config.Username != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("loki responded with status %v", resp.StatusCode)
	}
	return nil
}
