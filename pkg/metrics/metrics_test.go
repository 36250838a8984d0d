package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording business metrics", func() {
			Convey("Then recording should not panic", func() {
				So(func() {
					RecordJobProcessed()
					RecordJobDuplicate()
					RecordJobRejected()
					RecordElementsScored(12)
					RecordAttributesUpdated(12)
					RecordCapabilityClamped()
					RecordScoreByFamily("ability_skill_knowledge")
					RecordEngineLatency(1.5)
				}, ShouldNotPanic)
			})
		})

		Convey("When updating operational gauges", func() {
			Convey("Then updating should not panic", func() {
				So(func() {
					UpdateQueueSize(10)
					UpdateQueueCapacity(1000)
					UpdateQueueUtilization(0.01)
					RecordQueueEnqueue()
					RecordQueueDequeue()
					RecordQueueError()
					UpdateWorkerCount(4)
					RecordWorkerLatency(2.0)
					RecordWorkerError()
					UpdateStoreUsers(3)
					UpdateStoreAttributes(120)
					UpdateStoreShards(8)
					RecordStoreLatency(0.2)
				}, ShouldNotPanic)
			})
		})

		Convey("When fetching the registry", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
