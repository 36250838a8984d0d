package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	queue "github.com/careerhq/attribute-engine/internal/adapters/mq/queue"
	worker "github.com/careerhq/attribute-engine/internal/adapters/mq/worker"
	model "github.com/careerhq/attribute-engine/internal/domain/model"
	logging "github.com/careerhq/attribute-engine/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing.
type mockQueue struct {
	jobChan chan queue.Job
}

func newMockQueue() *mockQueue {
	return &mockQueue{
		jobChan: make(chan queue.Job, 10),
	}
}

func (mq *mockQueue) Dequeue(ctx context.Context) <-chan queue.Job {
	return mq.jobChan
}

func (mq *mockQueue) Close() error {
	close(mq.jobChan)
	return nil
}

func (mq *mockQueue) addJob(j queue.Job) {
	mq.jobChan <- j
}

type mockCatalog struct {
	tables map[string][]model.OccupationElement
}

func newMockCatalog() *mockCatalog {
	return &mockCatalog{tables: make(map[string][]model.OccupationElement)}
}

func (mc *mockCatalog) Elements(occupationCode string) ([]model.OccupationElement, error) {
	elements, ok := mc.tables[occupationCode]
	if !ok {
		return nil, errors.New("occupation not found")
	}
	return elements, nil
}

func (mc *mockCatalog) put(code string, elements []model.OccupationElement) {
	mc.tables[code] = elements
}

type mockUpdater struct {
	users map[string]map[string]model.UserAttribute
	mu    sync.RWMutex
}

func newMockUpdater() *mockUpdater {
	return &mockUpdater{users: make(map[string]map[string]model.UserAttribute)}
}

func (mu *mockUpdater) Update(ctx context.Context, userID string, fn func(prior map[string]model.UserAttribute) (map[string]model.UserAttribute, error)) error {
	mu.mu.Lock()
	defer mu.mu.Unlock()

	prior := make(map[string]model.UserAttribute, len(mu.users[userID]))
	for id, attr := range mu.users[userID] {
		prior[id] = attr
	}

	updated, err := fn(prior)
	if err != nil {
		return err
	}

	current := mu.users[userID]
	if current == nil {
		current = make(map[string]model.UserAttribute, len(updated))
		mu.users[userID] = current
	}
	for id, attr := range updated {
		current[id] = attr
	}
	return nil
}

func (mu *mockUpdater) attribute(userID, elementID string) (model.UserAttribute, bool) {
	mu.mu.RLock()
	defer mu.mu.RUnlock()
	attr, ok := mu.users[userID][elementID]
	return attr, ok
}

type mockUnrecorder struct {
	ids []string
	mu  sync.Mutex
}

func (mr *mockUnrecorder) Unrecord(ctx context.Context, id string) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.ids = append(mr.ids, id)
}

func (mr *mockUnrecorder) unrecorded() []string {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	return append([]string(nil), mr.ids...)
}

func developerElements() []model.OccupationElement {
	return []model.OccupationElement{
		{
			ElementID:   "2.A.1.a",
			ElementName: "Reading Comprehension",
			Scales: []model.ScaleValue{
				{ScaleID: "LV", Value: 3.5},
				{ScaleID: "IM", Value: 4.0},
			},
		},
		{
			ElementID:   "1.B.1.c",
			ElementName: "Investigative",
			Scales: []model.ScaleValue{
				{ScaleID: "OI", Value: 7.0},
			},
		},
	}
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a new InMemoryWorker", t, func() {
		// Initialize logging for tests
		_ = logging.Init()

		q := newMockQueue()
		catalog := newMockCatalog()
		updater := newMockUpdater()
		unrecorder := &mockUnrecorder{}

		catalog.put("15-1252.00", developerElements())

		convey.Convey("When creating a worker with default options", func() {
			w := worker.NewInMemoryWorker(q, catalog, updater)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(w, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running a worker", func() {
			w := worker.NewInMemoryWorker(
				q, catalog, updater,
				worker.WithName("test-worker"),
				worker.WithUnrecorder(unrecorder),
			)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go w.Run(ctx)
			time.Sleep(10 * time.Millisecond)

			convey.Convey("And when processing a job", func() {
				q.addJob(model.JobExperience{
					JobID:          "job-1",
					UserID:         "user-1",
					OccupationCode: "15-1252.00",
					DurationYears:  2,
					Source:         "resume",
				})

				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then it should update the user's attributes", func() {
					attr, ok := updater.attribute("user-1", "2.A.1.a")
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(attr.Capability, convey.ShouldAlmostEqual, 2*(3.5*4.0/35.0))
					convey.So(attr.Preference, convey.ShouldEqual, 4.0)
					convey.So(attr.Source, convey.ShouldEqual, "resume")

					interest, ok := updater.attribute("user-1", "1.B.1.c")
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(interest.Capability, convey.ShouldAlmostEqual, 2.0)

					convey.So(unrecorder.unrecorded(), convey.ShouldBeEmpty)
				})
			})

			convey.Convey("And when the occupation is unknown", func() {
				q.addJob(model.JobExperience{
					JobID:          "job-2",
					UserID:         "user-2",
					OccupationCode: "00-0000.00",
					DurationYears:  1,
				})

				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then no attributes should be written and the job released", func() {
					_, ok := updater.attribute("user-2", "2.A.1.a")
					convey.So(ok, convey.ShouldBeFalse)
					convey.So(unrecorder.unrecorded(), convey.ShouldContain, "job-2")
				})
			})

			convey.Convey("And when the job has a negative duration", func() {
				q.addJob(model.JobExperience{
					JobID:          "job-3",
					UserID:         "user-3",
					OccupationCode: "15-1252.00",
					DurationYears:  -1,
				})

				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then no attributes should be written and the job released", func() {
					_, ok := updater.attribute("user-3", "2.A.1.a")
					convey.So(ok, convey.ShouldBeFalse)
					convey.So(unrecorder.unrecorded(), convey.ShouldContain, "job-3")
				})
			})

			convey.Convey("And when shutting down", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
				defer shutdownCancel()

				err := w.Shutdown(shutdownCtx)

				convey.Convey("Then it should stop cleanly", func() {
					convey.So(err, convey.ShouldBeNil)
				})
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a worker pool", t, func() {
		_ = logging.Init()

		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		catalog := newMockCatalog()
		updater := newMockUpdater()
		unrecorder := &mockUnrecorder{}

		catalog.put("15-1252.00", developerElements())

		pool := worker.NewPool(4, q, catalog, updater, worker.WithPoolUnrecorder(unrecorder))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		pool.Start(ctx)

		convey.Convey("When jobs for several users are enqueued", func() {
			jobs := []model.JobExperience{
				{JobID: "job-1", UserID: "user-1", OccupationCode: "15-1252.00", DurationYears: 1, Source: "resume"},
				{JobID: "job-2", UserID: "user-2", OccupationCode: "15-1252.00", DurationYears: 3, Source: "resume"},
				{JobID: "job-3", UserID: "user-1", OccupationCode: "15-1252.00", DurationYears: 2, Source: "manual"},
			}
			for _, j := range jobs {
				convey.So(q.Enqueue(ctx, j), convey.ShouldBeTrue)
			}

			time.Sleep(100 * time.Millisecond)

			convey.Convey("Then every user's attributes should accumulate", func() {
				attr, ok := updater.attribute("user-1", "1.B.1.c")
				convey.So(ok, convey.ShouldBeTrue)
				// 1 year then 2 more at interest score 1.0
				convey.So(attr.Capability, convey.ShouldAlmostEqual, 3.0)

				other, ok := updater.attribute("user-2", "1.B.1.c")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(other.Capability, convey.ShouldAlmostEqual, 3.0)
			})

			convey.Convey("And shutting down the pool should close the queue", func() {
				err := pool.Shutdown(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
			})
		})
	})
}
