// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package analytics

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Sachin007-lgtm/Section-Sense/core"
	"github.com/Sachin007-lgtm/Section-Sense/storage"
)

// defaultQueueSize is how many pending records the recorder buffers before
// it starts dropping instead of blocking the search path.
const defaultQueueSize = 256

// defaultWriteTimeout bounds each background append.
const defaultWriteTimeout = 5 * time.Second

// ErrQueryLogRepositoryRequired is returned when a recorder is created
// without a query log repository.
var ErrQueryLogRepositoryRequired = errors.New("query log repository required")

// Recorder persists query analytics without ever blocking a search.
// Record enqueues; a single background worker drains the queue. When the
// queue is full or the store is down, records are dropped and counted.
type Recorder struct {
	queryLog storage.QueryLogRepository
	queue    chan *core.QueryRecord
	dropped  atomic.Int64
	logger   *slog.Logger

	closeOnce sync.Once
	done      chan struct{}
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder) error

// WithQueueSize sets the pending-record buffer size.
func WithQueueSize(size int) RecorderOption {
	return func(r *Recorder) error {
		if size < 1 {
			size = 1
		}
		r.queue = make(chan *core.QueryRecord, size)
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRecorder creates a Recorder and starts its background worker.
func NewRecorder(queryLog storage.QueryLogRepository, opts ...RecorderOption) (*Recorder, error) {
	if queryLog == nil {
		return nil, ErrQueryLogRepositoryRequired
	}

	r := &Recorder{
		queryLog: queryLog,
		queue:    make(chan *core.QueryRecord, defaultQueueSize),
		logger:   slog.Default(),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	r.logger = r.logger.With("component", "analytics-recorder")

	go r.run()

	return r, nil
}

// Record enqueues one query's metadata. It never blocks: when the queue is
// full the record is dropped and the drop counter incremented.
func (r *Recorder) Record(record *core.QueryRecord) {
	if record == nil {
		return
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	select {
	case r.queue <- record:
	default:
		r.dropped.Add(1)
		r.logger.Warn("analytics queue full, dropping query record",
			"query", record.QueryText)
	}
}

// Dropped returns how many records have been dropped since start.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

// Close stops accepting records, drains the queue, and waits for the
// worker to finish.
func (r *Recorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.queue)
		<-r.done
	})
	return nil
}

func (r *Recorder) run() {
	defer close(r.done)

	for record := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), defaultWriteTimeout)
		_, err := r.queryLog.AppendQueryRecords(ctx, record)
		cancel()
		if err != nil {
			r.dropped.Add(1)
			r.logger.Warn("failed to persist query record",
				"query", record.QueryText, "err", err)
		}
	}
}
