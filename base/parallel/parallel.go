// Copyright 2026 mldata Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parallel

import (
	"sync"

	"github.com/gorse-io/mldata/base/log"
	"github.com/juju/errors"
	"go.uber.org/zap"
	"modernc.org/mathutil"
)

const chanSize = 1024

// recoverJob turns a panic inside a job into its error.
func recoverJob(err *error) {
	if r := recover(); r != nil {
		log.Logger().Error("panic recovered", zap.Any("panic", r))
		*err = errors.Errorf("panic: %v", r)
	}
}

func runJob(worker func(workerId, jobId int) error, workerId, jobId int) (err error) {
	defer recoverJob(&err)
	return worker(workerId, jobId)
}

// Parallel schedules and runs jobs in parallel. nJobs is the number of jobs.
// nWorkers is the number of executors. The first error stops the worker that
// hit it and is returned once every worker is done.
func Parallel(nJobs, nWorkers int, worker func(workerId, jobId int) error) error {
	if nWorkers <= 1 {
		for i := 0; i < nJobs; i++ {
			if err := runJob(worker, 0, i); err != nil {
				return errors.Trace(err)
			}
		}
		return nil
	}
	c := make(chan int, chanSize)
	// producer
	go func() {
		for i := 0; i < nJobs; i++ {
			c <- i
		}
		close(c)
	}()
	// consumer
	var wg sync.WaitGroup
	wg.Add(nWorkers)
	errs := make([]error, nJobs)
	for j := 0; j < nWorkers; j++ {
		go func(workerId int) {
			defer wg.Done()
			for jobId := range c {
				if err := runJob(worker, workerId, jobId); err != nil {
					errs[jobId] = err
					// drain the queue so the producer finishes
					for range c {
					}
					return
				}
			}
		}(j)
	}
	wg.Wait()
	// check errors
	for _, err := range errs {
		if err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// BatchParallel runs jobs in batches of batchSize to reduce the cost of
// context switch. worker receives the range [beginJobId, endJobId).
func BatchParallel(nJobs, nWorkers, batchSize int, worker func(workerId, beginJobId, endJobId int) error) error {
	if batchSize < 1 {
		return errors.NotValidf("batch size %d", batchSize)
	}
	nBatches := (nJobs + batchSize - 1) / batchSize
	return Parallel(nBatches, nWorkers, func(workerId, batchId int) error {
		begin := batchId * batchSize
		return worker(workerId, begin, mathutil.Min(begin+batchSize, nJobs))
	})
}

// Split a slice into n slices and keep the order of elements.
func Split[T any](a []T, n int) [][]T {
	if n > len(a) {
		n = len(a)
	}
	if n == 0 {
		return nil
	}
	minChunkSize := len(a) / n
	maxChunkNum := len(a) % n
	chunks := make([][]T, n)
	for i, j := 0, 0; i < n; i++ {
		chunkSize := minChunkSize
		if i < maxChunkNum {
			chunkSize++
		}
		chunks[i] = a[j : j+chunkSize]
		j += chunkSize
	}
	return chunks
}
