package conversion

import (
	"encoding/json"
	"strings"
)

type OutcomeAction string

const (
	ActionDrop  OutcomeAction = "drop"
	ActionRetry OutcomeAction = "retry"
	ActionLog   OutcomeAction = "log"
)

// DeliveryOutcome is the verdict on a single dispatch response. It is derived,
// logged, and never persisted as mutable state.
type DeliveryOutcome struct {
	Action      OutcomeAction
	ShouldRetry bool
	Reason      string
}

type apiResponse struct {
	EventsReceived *int `json:"events_received"`
	Error          *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ClassifyOutcome interprets the ads-API response for one dispatched event.
//
//   - 2xx with events_received == 0: the pixel/catalog link likely does not
//     match; resending the same payload cannot help, log for investigation.
//   - 4xx: malformed payload, resending cannot succeed.
//   - duplicate rejection: already delivered via the other channel.
//   - 5xx (or the synthetic 5xx a timeout maps to): transient, retry with the
//     same event id.
func ClassifyOutcome(statusCode int, body []byte) DeliveryOutcome {
	var resp apiResponse
	_ = json.Unmarshal(body, &resp)

	if resp.Error != nil && strings.Contains(strings.ToLower(resp.Error.Message), "duplicate") {
		return DeliveryOutcome{Action: ActionDrop, Reason: "duplicate delivery"}
	}

	switch {
	case statusCode >= 200 && statusCode < 300:
		if resp.EventsReceived != nil && *resp.EventsReceived == 0 {
			return DeliveryOutcome{Action: ActionLog, Reason: "accepted but zero events received"}
		}
		return DeliveryOutcome{Action: ActionLog, Reason: "delivered"}
	case statusCode >= 400 && statusCode < 500:
		return DeliveryOutcome{Action: ActionDrop, Reason: "rejected by receiver"}
	case statusCode >= 500:
		return DeliveryOutcome{Action: ActionRetry, ShouldRetry: true, Reason: "transient receiver failure"}
	default:
		return DeliveryOutcome{Action: ActionLog, Reason: "unrecognized response"}
	}
}
