package worker

import (
	"context"
	"encoding/json"
	"event-scanner-service/config"
	"event-scanner-service/fetcher"
	"event-scanner-service/metrics"
	"event-scanner-service/model"
	"event-scanner-service/scanner"
	"log"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	scanRequestSubject = "events.scan.request"
	scanResultSubject  = "events.scan.result"
)

// Worker runs scans on demand via NATS and on a periodic schedule.
type Worker struct {
	config     *config.Config
	natsConn   *nats.Conn
	scanner    *scanner.Scanner
	cancelFunc context.CancelFunc
}

func NewWorker(cfg *config.Config, sc *scanner.Scanner) (*Worker, error) {
	nc, err := nats.Connect(cfg.NATSUrl)
	if err != nil {
		return nil, err
	}

	return &Worker{
		config:   cfg,
		natsConn: nc,
		scanner:  sc,
	}, nil
}

func (w *Worker) Start(ctx context.Context) error {
	log.Println("Starting scan worker...")

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel

	_, err := w.natsConn.Subscribe(scanRequestSubject, func(msg *nats.Msg) {
		w.handleScanRequest(workerCtx, msg)
	})
	if err != nil {
		return err
	}

	log.Printf("Successfully subscribed to %s", scanRequestSubject)

	go w.startScheduler(workerCtx)

	log.Println("Worker started successfully")
	return nil
}

func (w *Worker) Stop() {
	log.Println("Stopping scan worker...")
	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	if w.natsConn != nil {
		w.natsConn.Close()
	}
}

func (w *Worker) handleScanRequest(ctx context.Context, msg *nats.Msg) {
	var req model.ScanRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		log.Printf("Failed to unmarshal scan request: %v", err)
		metrics.NatsMessagesReceived.WithLabelValues(scanRequestSubject, "error").Inc()
		return
	}
	metrics.NatsMessagesReceived.WithLabelValues(scanRequestSubject, "ok").Inc()

	log.Printf("Processing scan request: %+v", req)

	scanCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	result, err := w.scanner.Run(scanCtx, w.optionsFromRequest(req))
	if err != nil {
		log.Printf("Scan failed for request %s: %v", req.RequestID, err)
	}
	result.RequestID = req.RequestID

	w.publishResult(result)

	log.Printf("Completed scan request: %s", req.RequestID)
}

// optionsFromRequest fills unset knobs from the configured defaults.
func (w *Worker) optionsFromRequest(req model.ScanRequest) fetcher.FetchOptions {
	opts := scanner.OptionsFromConfig(w.config)

	if req.VideoID != "" || req.ChannelID != "" || req.CategoryID != "" || req.Keyword != "" {
		opts.VideoID = req.VideoID
		opts.ChannelID = req.ChannelID
		opts.CategoryID = req.CategoryID
		opts.Keyword = req.Keyword
	}
	if req.MaxVideos > 0 {
		opts.MaxVideos = req.MaxVideos
	}
	if req.MaxResults > 0 {
		opts.MaxResults = req.MaxResults
	}
	return opts
}

func (w *Worker) publishResult(result model.ScanResult) {
	data, err := json.Marshal(result)
	if err != nil {
		log.Printf("Failed to marshal scan result: %v", err)
		return
	}

	if err := w.natsConn.Publish(scanResultSubject, data); err != nil {
		log.Printf("Failed to publish scan result: %v", err)
		metrics.NatsMessagesPublished.WithLabelValues(scanResultSubject, "error").Inc()
		return
	}
	metrics.NatsMessagesPublished.WithLabelValues(scanResultSubject, "ok").Inc()
}

func (w *Worker) startScheduler(ctx context.Context) {
	log.Println("Scheduling periodic scans")

	ticker := time.NewTicker(w.config.ScanInterval)
	defer ticker.Stop()

	// Initial scan request on startup
	w.scheduleScan()

	for {
		select {
		case <-ctx.Done():
			log.Println("Scheduler stopped")
			return
		case <-ticker.C:
			log.Println("Triggering scheduled scan")
			w.scheduleScan()
		}
	}
}

func (w *Worker) scheduleScan() {
	req := model.ScanRequest{
		Keyword:    w.config.SearchKeyword,
		MaxVideos:  w.config.MaxVideos,
		MaxResults: w.config.MaxResults,
		Priority:   "normal",
		RequestID:  generateRequestID(w.config.SearchKeyword),
	}

	data, err := json.Marshal(req)
	if err != nil {
		log.Printf("Failed to marshal scan request: %v", err)
		return
	}

	if err := w.natsConn.Publish(scanRequestSubject, data); err != nil {
		log.Printf("Failed to publish scan request: %v", err)
		metrics.NatsMessagesPublished.WithLabelValues(scanRequestSubject, "error").Inc()
	} else {
		log.Printf("Scheduled scan for keyword '%s'", req.Keyword)
		metrics.NatsMessagesPublished.WithLabelValues(scanRequestSubject, "ok").Inc()
	}
}

func generateRequestID(keyword string) string {
	return keyword + "-" + time.Now().Format("20060102-150405")
}
