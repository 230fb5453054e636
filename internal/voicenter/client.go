package voicenter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the production Voicenter CDR hub endpoint
const DefaultBaseURL = "https://api.voicenter.com/hub/cdr/"

// RequestTimeout bounds the single HTTP call of a sync cycle
const RequestTimeout = 30 * time.Second

// Date format the CDR API expects for the search range (GMT 0, no zone suffix)
const apiDateFormat = "2006-01-02T15:04:05"

// cdrFields is the fixed field list requested on every fetch
var cdrFields = []string{
	"CallerNumber", "TargetNumber", "Date", "Duration",
	"CallID", "Type", "CdrType", "DialStatus", "TargetExtension",
	"CallerExtension", "DID", "QueueName", "RecordURL", "RecordExpect",
	"Price", "RingTime", "RepresentativeName", "RepresentativeCode",
	"UserName", "DTMFData", "CustomData", "DepartmentName",
	"DepartmentId", "TargetPrefixName",
}

// CDR is one raw call detail record as returned by the Voicenter API
type CDR struct {
	CallID             string          `json:"CallID"`
	Date               string          `json:"Date"`
	CallerNumber       string          `json:"CallerNumber"`
	TargetNumber       string          `json:"TargetNumber"`
	CallerExtension    string          `json:"CallerExtension"`
	TargetExtension    string          `json:"TargetExtension"`
	DID                string          `json:"DID"`
	Duration           int             `json:"Duration"`
	RingTime           int             `json:"RingTime"`
	Type               string          `json:"Type"`
	CdrType            int             `json:"CdrType"`
	DialStatus         string          `json:"DialStatus"`
	RecordURL          string          `json:"RecordURL"`
	RecordExpect       bool            `json:"RecordExpect"`
	Price              float64         `json:"Price"`
	RepresentativeName string          `json:"RepresentativeName"`
	RepresentativeCode string          `json:"RepresentativeCode"`
	UserName           string          `json:"UserName"`
	DepartmentName     string          `json:"DepartmentName"`
	DepartmentID       int             `json:"DepartmentId"`
	QueueName          string          `json:"QueueName"`
	TargetPrefixName   string          `json:"TargetPrefixName"`
	DTMFData           json.RawMessage `json:"DTMFData"`
	CustomData         json.RawMessage `json:"CustomData"`
}

type fetchRequest struct {
	Code   string       `json:"code"`
	Fields []string     `json:"fields"`
	Search searchRange  `json:"search"`
	Sort   []sortClause `json:"sort"`
}

type searchRange struct {
	FromDate string `json:"fromdate"`
	ToDate   string `json:"todate"`
}

type sortClause struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

type fetchResponse struct {
	ErrorNumber      int    `json:"ERROR_NUMBER"`
	ErrorDescription string `json:"ERROR_DESCRIPTION"`
	CDRList          []CDR  `json:"CDR_LIST"`
}

// Client fetches call detail records from the Voicenter CDR API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Voicenter client. An empty baseURL selects the
// production endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// FetchCDRs issues one POST for all calls between from and to, sorted by
// date descending. It returns ErrNoAPIToken before any network call when
// apiToken is empty, a *TransportError on network/HTTP failure and a
// *VendorError when the response envelope reports a non-zero error code.
func (c *Client) FetchCDRs(ctx context.Context, apiToken string, from, to time.Time) ([]CDR, error) {
	if apiToken == "" {
		return nil, ErrNoAPIToken
	}

	payload := fetchRequest{
		Code:   apiToken,
		Fields: cdrFields,
		Search: searchRange{
			FromDate: from.Format(apiDateFormat),
			ToDate:   to.Format(apiDateFormat),
		},
		Sort: []sortClause{{Field: "date", Order: "desc"}},
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Err: fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))}
	}

	var envelope fetchResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if envelope.ErrorNumber != 0 {
		return nil, &VendorError{Code: envelope.ErrorNumber, Description: envelope.ErrorDescription}
	}

	logrus.Debugf("Retrieved %d calls from Voicenter", len(envelope.CDRList))
	return envelope.CDRList, nil
}
