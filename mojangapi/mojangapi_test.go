package mojangapi

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"mcproto/protoerr"
)

type fixedRoundTripper struct {
	status int
	body   string
}

func (f fixedRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     make(http.Header),
	}, nil
}

func clientReturning(status int, body string) *http.Client {
	return &http.Client{Transport: fixedRoundTripper{status: status, body: body}}
}

func TestHasJoinedSuccess(t *testing.T) {
	client := clientReturning(200, `{"id":"4566e69fc90748ee8d71d7ba5aa00d20","name":"Notch","properties":[{"name":"textures","value":"abc"}]}`)
	profile, err := HasJoined(context.Background(), client, "Notch", "somehash")
	if err != nil {
		t.Fatal(err)
	}
	if profile.Name != "Notch" || profile.ID != "4566e69fc90748ee8d71d7ba5aa00d20" {
		t.Errorf("got %+v", profile)
	}
	if len(profile.Properties) != 1 || profile.Properties[0].Name != "textures" {
		t.Errorf("got properties %+v", profile.Properties)
	}
}

func TestHasJoinedFailureStatus(t *testing.T) {
	client := clientReturning(204, ``)
	_, err := HasJoined(context.Background(), client, "Notch", "somehash")
	if !protoerr.Is(err, protoerr.KindProtocolViolation) {
		t.Fatalf("expected KindProtocolViolation, got %v", err)
	}
}

func TestNameToUUID(t *testing.T) {
	client := clientReturning(200, `{"id":"069a79f444e94726a5befca90e38aaf5","name":"Notch"}`)
	n, err := NameToUUID(context.Background(), client, "Notch")
	if err != nil {
		t.Fatal(err)
	}
	if n.Name != "Notch" {
		t.Errorf("got %+v", n)
	}
}

func TestStatisticsRejectsEmptyKeys(t *testing.T) {
	client := clientReturning(200, `{}`)
	if _, err := Statistics(context.Background(), client, nil); !protoerr.Is(err, protoerr.KindInvalidOutbound) {
		t.Fatalf("expected KindInvalidOutbound, got %v", err)
	}
}

func TestStatisticsDecodesTypoedField(t *testing.T) {
	client := clientReturning(200, `{"total":1000,"last24h":50,"saleVelocityPerSeconds":0.75}`)
	stats, err := Statistics(context.Background(), client, []string{"item_sold_minecraft"})
	if err != nil {
		t.Fatal(err)
	}
	if stats.SaleVelocityPerSeconds != 0.75 || stats.Total != 1000 || stats.Last24h != 50 {
		t.Errorf("got %+v", stats)
	}
}
