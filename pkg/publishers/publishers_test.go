package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
}

func TestValidatePublisherConfigRejectsMissingHTTP(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "h1",
		Type: TypeHTTP,
	})
	if err == nil {
		t.Fatalf("expected validation error for missing http block")
	}
}

func TestLoadRegistryCloudPublishers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: alerts
    type: SNS
    sns:
      topic_arn: " arn:aws:sns:us-east-1:000000000000:probes "
      region: us-east-1
      endpoint: http://localhost:4566
  - id: queue
    type: sqs
    sqs:
      uri: http://localhost:4566/000000000000/probes
      region: us-east-1
      access_key_id: test
      secret_access_key: test
  - id: pubsub
    type: gcp_pubsub
    gcp_pubsub:
      project_id: demo
      topic: probes
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if got := len(reg.Enabled()); got != 3 {
		t.Fatalf("expected 3 enabled publishers, got %d", got)
	}

	sns, ok := reg.ByID("alerts")
	if !ok {
		t.Fatalf("alerts publisher missing")
	}
	if sns.Type != TypeSNS {
		t.Fatalf("type not normalized: %q", sns.Type)
	}
	if sns.SNS.TopicARN != "arn:aws:sns:us-east-1:000000000000:probes" || sns.SNS.Endpoint != "http://localhost:4566" {
		t.Fatalf("unexpected sns config %#v", sns.SNS)
	}

	sqs, _ := reg.ByID("queue")
	if sqs.SQS.AccessKeyID != "test" || sqs.SQS.Region != "us-east-1" {
		t.Fatalf("inline aws access not decoded: %#v", sqs.SQS)
	}
}

func TestLoadRegistryRejectsDuplicateIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.json")
	raw := `{"publishers":[{"id":"a","type":"http","http":{"url":"https://x"}},{"id":"a","type":"http","http":{"url":"https://y"}}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidatePublisherConfigRequiresRegion(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "alerts",
		Type: TypeSNS,
		SNS:  &SNSPublisherConfig{TopicARN: "arn"},
	})
	if err == nil {
		t.Fatalf("expected validation error for missing region")
	}
}
