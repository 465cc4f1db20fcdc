package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

func TestWithComponent(t *testing.T) {
	log := Logger()
	entry := log.WithComponent("test")
	if v, ok := entry.Entry.Data["component"]; !ok || v != "test" {
		t.Fatalf("component field missing: %v", entry.Entry.Data)
	}
}

func TestConfigureInvalidLevel(t *testing.T) {
	// Ensure environment variables do not override the provided level
	t.Setenv("LOG_LEVEL", "")

	log := Logger()
	if err := log.Configure("invalid", "json", "stdout", 0); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestConfigureInvalidFormat(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	log := Logger()
	if err := log.Configure("info", "xml", "stdout", 0); err == nil {
		t.Fatalf("expected error for invalid format")
	}
}

func TestConfigureFileOutput(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	path := filepath.Join(t.TempDir(), "client.log")
	log := Logger()
	if err := log.Configure("debug", "json", path, 0); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	log.WithComponent("file_test").Info("hello")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"component":"file_test"`) {
		t.Fatalf("log line not written: %s", data)
	}
}

func TestJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	log := Logger()
	log.SetOutput(&buf)
	log.WithFields(Fields{"method": "Balance"}).Info("sent")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	for _, key := range []string{"timestamp", "level", "message", "method"} {
		if _, ok := line[key]; !ok {
			t.Errorf("missing key %q in %v", key, line)
		}
	}
}

func TestWithEnv(t *testing.T) {
	t.Setenv("FOO", "bar")
	log := Logger()
	entry := log.WithEnv("FOO")
	if v, ok := entry.Entry.Data["FOO"]; !ok || v != "bar" {
		t.Fatalf("env field not set: %v", entry.Entry.Data)
	}
}

type fakeCloudWatch struct {
	mu         sync.Mutex
	metrics    []*cloudwatch.PutMetricDataInput
	dashboards []*cloudwatch.PutDashboardInput
}

func (f *fakeCloudWatch) PutMetricData(_ context.Context, in *cloudwatch.PutMetricDataInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metrics = append(f.metrics, in)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func (f *fakeCloudWatch) PutDashboard(_ context.Context, in *cloudwatch.PutDashboardInput, _ ...func(*cloudwatch.Options)) (*cloudwatch.PutDashboardOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dashboards = append(f.dashboards, in)
	return &cloudwatch.PutDashboardOutput{}, nil
}

func TestLogMetricPublishes(t *testing.T) {
	fake := &fakeCloudWatch{}
	setCloudWatchClient(fake, "TestNS", "TestDash")
	t.Cleanup(func() { setCloudWatchClient(nil, "", "") })

	log := Logger()
	log.SetOutput(&bytes.Buffer{})
	log.WithComponent("dispatcher").LogMetric("dispatcher", "requests", int64(1), "counter", Fields{"method": "Time"})
	LogPerformanceEntry(log.WithComponent("dispatcher"), "dispatcher", "Time", 25*time.Millisecond, nil)
	log.WithComponent("dispatcher").LogMetric("dispatcher", "ignored", "not-a-number", "", nil)

	CreateDefaultDashboard(context.Background())

	fake.mu.Lock()
	metrics := append([]*cloudwatch.PutMetricDataInput(nil), fake.metrics...)
	dashboards := append([]*cloudwatch.PutDashboardInput(nil), fake.dashboards...)
	fake.mu.Unlock()

	if len(metrics) != 2 {
		t.Fatalf("expected 2 publishes, got %d", len(metrics))
	}
	first := metrics[0]
	if *first.Namespace != "TestNS" {
		t.Errorf("unexpected namespace: %s", *first.Namespace)
	}
	if *first.MetricData[0].MetricName != "requests" || *first.MetricData[0].Value != 1 {
		t.Errorf("unexpected datum: %+v", first.MetricData[0])
	}
	if *metrics[1].MetricData[0].MetricName != "latency_ms" {
		t.Errorf("expected latency metric, got %s", *metrics[1].MetricData[0].MetricName)
	}
	if len(dashboards) != 1 || *dashboards[0].DashboardName != "TestDash" {
		t.Fatalf("dashboard not created: %+v", dashboards)
	}
}
