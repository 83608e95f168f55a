package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricsEmitter publishes checkout metrics to CloudWatch.
type MetricsEmitter struct {
	client    CloudWatchAPI
	namespace string
	nowFunc   func() time.Time
}

// NewMetricsEmitter returns an emitter bound to a metric namespace.
func NewMetricsEmitter(client CloudWatchAPI, namespace string) *MetricsEmitter {
	return &MetricsEmitter{
		client:    client,
		namespace: namespace,
		nowFunc:   time.Now,
	}
}

// EmitOrderSubmitted records one submitted order and its total amount.
// paymentMethod is attached as a dimension so totals can be split per method.
func (m *MetricsEmitter) EmitOrderSubmitted(ctx context.Context, total int64, paymentMethod string) error {
	now := m.nowFunc()
	dims := []cwtypes.Dimension{
		{Name: awsString("PaymentMethod"), Value: &paymentMethod},
	}
	input := &cloudwatch.PutMetricDataInput{
		Namespace: &m.namespace,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: awsString("OrdersSubmitted"),
				Timestamp:  &now,
				Value:      sdkaws.Float64(1),
				Unit:       cwtypes.StandardUnitCount,
				Dimensions: dims,
			},
			{
				MetricName: awsString("OrderTotal"),
				Timestamp:  &now,
				Value:      sdkaws.Float64(float64(total)),
				Unit:       cwtypes.StandardUnitNone,
				Dimensions: dims,
			},
		},
	}
	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
