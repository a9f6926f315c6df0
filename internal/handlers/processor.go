package handlers

import (
	"context"
	"log"
	"sync"

	"tradeledger/internal/models"
	"tradeledger/internal/store"
)

// TradeResult represents the outcome of a trade submission
type TradeResult struct {
	TradeID string
	Success bool
	Error   string
}

// tradeJob carries one trade through the queue together with its reply channel
type tradeJob struct {
	trade    models.Trade
	resultCh chan TradeResult
}

// TradeProcessor serializes ledger writes through a worker pool. Submissions
// block until the write lands, so the caller sees the persisted result.
type TradeProcessor struct {
	workers    int
	tradeQueue chan tradeJob
	stopCh     chan struct{}
	wg         sync.WaitGroup
	store      store.TradeStore
}

func NewTradeProcessor(st store.TradeStore, workers int) *TradeProcessor {
	if workers < 1 {
		workers = 1
	}
	return &TradeProcessor{
		workers:    workers,
		tradeQueue: make(chan tradeJob, 100),
		stopCh:     make(chan struct{}),
		store:      st,
	}
}

// Start starts the worker pool
func (tp *TradeProcessor) Start() {
	for i := 0; i < tp.workers; i++ {
		tp.wg.Add(1)
		go tp.worker(i)
	}
	log.Printf("started %d trade workers", tp.workers)
}

// Stop gracefully stops all workers
func (tp *TradeProcessor) Stop() {
	close(tp.stopCh)
	tp.wg.Wait()
}

func (tp *TradeProcessor) worker(id int) {
	defer tp.wg.Done()

	for {
		select {
		case <-tp.stopCh:
			return
		case job := <-tp.tradeQueue:
			job.resultCh <- tp.process(job.trade)
		}
	}
}

func (tp *TradeProcessor) process(t models.Trade) TradeResult {
	if err := tp.store.Insert(context.Background(), t); err != nil {
		log.Printf("trade insert failed: %v", err)
		return TradeResult{Success: false, Error: "Failed to record trade"}
	}
	return TradeResult{TradeID: t.ID, Success: true}
}

// SubmitTrade queues a trade and waits for the result
func (tp *TradeProcessor) SubmitTrade(t models.Trade) TradeResult {
	resultCh := make(chan TradeResult, 1)
	tp.tradeQueue <- tradeJob{trade: t, resultCh: resultCh}
	return <-resultCh
}
