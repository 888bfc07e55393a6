package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace         = "Melodygen/API"
	cloudwatchTimeout = 5 * time.Second
)

// Client ships custom metrics to CloudWatch. Only production clients
// are enabled; every method is a no-op otherwise, including on nil.
type Client struct {
	client      *cloudwatch.Client
	environment string
}

// NewClient creates a CloudWatch client for production, or a disabled one.
func NewClient(ctx context.Context, environment string) (*Client, error) {
	if environment != "production" {
		log.Printf("CloudWatch metrics disabled (environment: %s)", environment)
		return &Client{environment: environment}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("Failed to load AWS config for CloudWatch: %v", err)
		return &Client{environment: environment}, nil
	}

	log.Printf("CloudWatch metrics enabled (namespace: %s)", namespace)
	return &Client{
		client:      cloudwatch.NewFromConfig(cfg),
		environment: environment,
	}, nil
}

// Enabled reports whether metrics are shipped.
func (m *Client) Enabled() bool {
	return m != nil && m.client != nil
}

// RecordAPIRequest ships a request count and its latency in one call.
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.Enabled() {
		return
	}

	dims := m.dimensions("Endpoint", endpoint, "StatusClass", statusClass(statusCode))
	m.sendAsync("api request",
		datum("APIRequests", 1, types.StandardUnitCount, dims),
		datum("APILatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dims),
	)
}

// RecordGeneration ships the generation's timing and size. Partial bars
// are only reported when there are some.
func (m *Client) RecordGeneration(g Generation) {
	if !m.Enabled() {
		return
	}

	dims := m.dimensions("TimeSignature", g.TimeSignature, "Outcome", g.outcome())
	data := []types.MetricDatum{
		datum("GenerationDuration", float64(g.Duration.Microseconds())/1000, types.StandardUnitMilliseconds, dims),
	}
	if !g.Failed {
		data = append(data, datum("NotesGenerated", float64(g.Notes), types.StandardUnitCount, dims))
	}
	if g.PartialBars > 0 {
		data = append(data, datum("PartialBars", float64(g.PartialBars), types.StandardUnitCount, dims))
	}
	m.sendAsync("generation", data...)
}

// dimensions pairs up names and values and appends the environment.
func (m *Client) dimensions(pairs ...string) []types.Dimension {
	dims := make([]types.Dimension, 0, len(pairs)/2+1)
	for i := 0; i+1 < len(pairs); i += 2 {
		dims = append(dims, types.Dimension{Name: aws.String(pairs[i]), Value: aws.String(pairs[i+1])})
	}
	return append(dims, types.Dimension{Name: aws.String("Environment"), Value: aws.String(m.environment)})
}

func datum(name string, value float64, unit types.StandardUnit, dims []types.Dimension) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: dims,
	}
}

func (m *Client) sendAsync(what string, data ...types.MetricDatum) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cloudwatchTimeout)
		defer cancel()
		if err := m.send(ctx, data); err != nil {
			log.Printf("Failed to record %s metrics: %v", what, err)
		}
	}()
}

func (m *Client) send(ctx context.Context, data []types.MetricDatum) error {
	if !m.Enabled() || len(data) == 0 {
		return nil
	}
	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(namespace),
		MetricData: data,
	})
	return err
}
