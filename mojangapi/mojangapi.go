// Package mojangapi wraps the handful of Mojang account-API endpoints
// a connection engine needs beyond the session-join call in
// mcproto/yggdrasil: the server-side hasJoined check, a name-to-UUID
// lookup, and the sales-statistics endpoint. Every function here is a
// pure request/response collaborator — no retry, no cached state — the
// same posture yggdrasil.Join takes.
package mojangapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"mcproto/protoerr"
)

const (
	hasJoinedURL  = "https://sessionserver.mojang.com/session/minecraft/hasJoined"
	nameToUUIDURL = "https://api.mojang.com/users/profiles/minecraft/"
	statisticsURL = "https://api.mojang.com/orders/statistics"
)

// ProfileResponse is returned by HasJoined on success: the authenticated
// player's UUID, name, and signed texture properties.
type ProfileResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Properties []ProfileProperty `json:"properties"`
}

// ProfileProperty is one signed property entry (typically "textures")
// on a ProfileResponse.
type ProfileProperty struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

// NameUUID is a single username-to-UUID mapping.
type NameUUID struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StatisticsResponse carries the Mojang sales-statistics endpoint's
// response. SaleVelocityPerSeconds mirrors the upstream API's own typo
// (saleVelocityPerSeconds, not e.g. salesVelocityPerSecond) at the JSON
// boundary only; the Go field name is spelled correctly.
type StatisticsResponse struct {
	Total                  uint64  `json:"total"`
	Last24h                uint64  `json:"last24h"`
	SaleVelocityPerSeconds float64 `json:"saleVelocityPerSeconds"`
}

func httpGet(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, protoerr.Wrap(protoerr.KindIO, err, "build GET %s", rawURL)
	}
	return do(client, req)
}

func httpPostJSON(ctx context.Context, client *http.Client, rawURL string, body any) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, protoerr.Wrap(protoerr.KindIO, err, "marshal request body for %s", rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, protoerr.Wrap(protoerr.KindIO, err, "build POST %s", rawURL)
	}
	req.Header.Set("Content-Type", "application/json")
	return do(client, req)
}

func do(client *http.Client, req *http.Request) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, protoerr.Wrap(protoerr.KindIO, err, "%s %s", req.Method, req.URL)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, protoerr.Wrap(protoerr.KindIO, err, "read response from %s", req.URL)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, protoerr.New(protoerr.KindProtocolViolation, "%s %s: status %d: %s", req.Method, req.URL, resp.StatusCode, string(data))
	}
	return data, nil
}

// HasJoined is the server-side counterpart of yggdrasil.Join: a server
// presented with EncryptionResponse calls this to confirm the client
// actually completed a session-join with Mojang before it grants
// LoginSuccess. serverHash must be computed the same way the client
// computed it: yggdrasil.ServerHash(serverID, sharedSecret, publicKey).
func HasJoined(ctx context.Context, client *http.Client, username, serverHash string) (*ProfileResponse, error) {
	u := fmt.Sprintf("%s?username=%s&serverId=%s", hasJoinedURL, url.QueryEscape(username), url.QueryEscape(serverHash))
	data, err := httpGet(ctx, client, u)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, protoerr.New(protoerr.KindProtocolViolation, "hasJoined: %s has not joined (empty response)", username)
	}
	var profile ProfileResponse
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, protoerr.Wrap(protoerr.KindMalformed, err, "decode hasJoined response")
	}
	return &profile, nil
}

// NameToUUID resolves a player name to its current UUID.
func NameToUUID(ctx context.Context, client *http.Client, username string) (*NameUUID, error) {
	data, err := httpGet(ctx, client, nameToUUIDURL+url.PathEscape(username))
	if err != nil {
		return nil, err
	}
	var n NameUUID
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, protoerr.Wrap(protoerr.KindMalformed, err, "decode NameToUUID response")
	}
	return &n, nil
}

type statisticsRequest struct {
	MetricKeys []string `json:"metricKeys"`
}

// Statistics requests the sum of sales for the given metric keys (e.g.
// "item_sold_minecraft", "prepaid_card_redeemed_minecraft").
func Statistics(ctx context.Context, client *http.Client, metricKeys []string) (*StatisticsResponse, error) {
	if len(metricKeys) == 0 {
		return nil, protoerr.New(protoerr.KindInvalidOutbound, "at least one metric key is required")
	}
	data, err := httpPostJSON(ctx, client, statisticsURL, statisticsRequest{MetricKeys: metricKeys})
	if err != nil {
		return nil, err
	}
	var stats StatisticsResponse
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, protoerr.Wrap(protoerr.KindMalformed, err, "decode Statistics response")
	}
	return &stats, nil
}
