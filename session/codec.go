package session

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Roand-7/Lokaah-sub001/core"
)

// Wire representation for sessions stored outside the process. core.Part is
// an interface, so events round-trip through tagged part records.

type partRecord struct {
	Type             string                 `json:"type"`
	Text             string                 `json:"text,omitempty"`
	Data             map[string]any         `json:"data,omitempty"`
	FunctionCall     *core.FunctionCall     `json:"function_call,omitempty"`
	FunctionResponse *core.FunctionResponse `json:"function_response,omitempty"`
	Metadata         map[string]any         `json:"metadata,omitempty"`
}

type contentRecord struct {
	Role  string       `json:"role,omitempty"`
	Parts []partRecord `json:"parts"`
}

type eventRecord struct {
	ID             string            `json:"id"`
	RunID          string            `json:"run_id"`
	Author         string            `json:"author"`
	Actions        core.EventActions `json:"actions"`
	Branch         *string           `json:"branch,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
	Content        *contentRecord    `json:"content,omitempty"`
	Partial        *bool             `json:"partial,omitempty"`
	TurnComplete   *bool             `json:"turn_complete,omitempty"`
	ErrorCode      *string           `json:"error_code,omitempty"`
	ErrorMessage   *string           `json:"error_message,omitempty"`
	CustomMetadata map[string]string `json:"custom_metadata,omitempty"`
}

type sessionRecord struct {
	ID       string            `json:"id"`
	State    map[string]any    `json:"state"`
	Events   []eventRecord     `json:"events"`
	Created  time.Time         `json:"created"`
	Updated  time.Time         `json:"updated"`
	Metadata map[string]string `json:"metadata"`
}

func encodePart(p core.Part) (partRecord, error) {
	switch part := p.(type) {
	case core.TextPart:
		return partRecord{Type: "text", Text: part.Text, Metadata: part.Metadata}, nil
	case core.DataPart:
		return partRecord{Type: "data", Data: part.Data, Metadata: part.Metadata}, nil
	case core.FunctionCallPart:
		fc := part.FunctionCall
		return partRecord{Type: "function_call", FunctionCall: &fc, Metadata: part.Metadata}, nil
	case core.FunctionResponsePart:
		fr := part.FunctionResponse
		return partRecord{Type: "function_response", FunctionResponse: &fr, Metadata: part.Metadata}, nil
	default:
		return partRecord{}, fmt.Errorf("unsupported part type %T", p)
	}
}

func decodePart(r partRecord) (core.Part, error) {
	switch r.Type {
	case "text":
		return core.TextPart{Text: r.Text, Metadata: r.Metadata}, nil
	case "data":
		return core.DataPart{Data: r.Data, Metadata: r.Metadata}, nil
	case "function_call":
		if r.FunctionCall == nil {
			return nil, fmt.Errorf("function_call part missing payload")
		}
		return core.FunctionCallPart{FunctionCall: *r.FunctionCall, Metadata: r.Metadata}, nil
	case "function_response":
		if r.FunctionResponse == nil {
			return nil, fmt.Errorf("function_response part missing payload")
		}
		return core.FunctionResponsePart{FunctionResponse: *r.FunctionResponse, Metadata: r.Metadata}, nil
	default:
		return nil, fmt.Errorf("unknown part type %q", r.Type)
	}
}

func encodeEvent(ev core.Event) (eventRecord, error) {
	rec := eventRecord{
		ID:             ev.ID,
		RunID:          ev.RunID,
		Author:         ev.Author,
		Actions:        ev.Actions,
		Branch:         ev.Branch,
		Timestamp:      ev.Timestamp,
		Partial:        ev.Partial,
		TurnComplete:   ev.TurnComplete,
		ErrorCode:      ev.ErrorCode,
		ErrorMessage:   ev.ErrorMessage,
		CustomMetadata: ev.CustomMetadata,
	}
	if ev.Content != nil {
		c := contentRecord{Role: ev.Content.Role}
		for _, p := range ev.Content.Parts {
			pr, err := encodePart(p)
			if err != nil {
				return eventRecord{}, err
			}
			c.Parts = append(c.Parts, pr)
		}
		rec.Content = &c
	}
	return rec, nil
}

func decodeEvent(rec eventRecord) (core.Event, error) {
	ev := core.Event{
		ID:             rec.ID,
		RunID:          rec.RunID,
		Author:         rec.Author,
		Actions:        rec.Actions,
		Branch:         rec.Branch,
		Timestamp:      rec.Timestamp,
		Partial:        rec.Partial,
		TurnComplete:   rec.TurnComplete,
		ErrorCode:      rec.ErrorCode,
		ErrorMessage:   rec.ErrorMessage,
		CustomMetadata: rec.CustomMetadata,
	}
	if rec.Content != nil {
		content := &core.Content{Role: rec.Content.Role}
		for _, pr := range rec.Content.Parts {
			p, err := decodePart(pr)
			if err != nil {
				return core.Event{}, err
			}
			content.Parts = append(content.Parts, p)
		}
		ev.Content = content
	}
	return ev, nil
}

// marshalSession serializes a session snapshot for external storage.
func marshalSession(sess *core.Session) ([]byte, error) {
	snap := sess.Clone()

	rec := sessionRecord{
		ID:       snap.ID,
		State:    snap.State,
		Created:  snap.Created,
		Updated:  snap.Updated,
		Metadata: snap.Metadata,
	}
	for _, ev := range snap.Events {
		er, err := encodeEvent(ev)
		if err != nil {
			return nil, err
		}
		rec.Events = append(rec.Events, er)
	}
	return json.Marshal(rec)
}

// unmarshalSession reverses marshalSession.
func unmarshalSession(raw []byte) (*core.Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}

	sess := core.NewSession(rec.ID)
	sess.Created = rec.Created
	sess.Updated = rec.Updated
	if rec.State != nil {
		sess.State = rec.State
	}
	if rec.Metadata != nil {
		sess.Metadata = rec.Metadata
	}
	for _, er := range rec.Events {
		ev, err := decodeEvent(er)
		if err != nil {
			return nil, err
		}
		sess.Events = append(sess.Events, ev)
	}
	return sess, nil
}
