package signal

import (
	"encoding/json"
	"fmt"
	"time"

	"murmur/internal/types"
)

// Wire shapes for the JSON envelopes emitted by `signal-cli receive -o json`.
// Only the fields the engine consumes are decoded.

type wireEnvelope struct {
	Envelope envelopeBody `json:"envelope"`
}

type envelopeBody struct {
	Source       string       `json:"source"`
	SourceNumber string       `json:"sourceNumber"`
	SourceUUID   string       `json:"sourceUuid"`
	SourceName   string       `json:"sourceName"`
	Timestamp    int64        `json:"timestamp"`
	DataMessage  *dataMessage `json:"dataMessage"`
	SyncMessage  *syncMessage `json:"syncMessage"`
}

type dataMessage struct {
	Timestamp   int64            `json:"timestamp"`
	Message     string           `json:"message"`
	GroupInfo   *groupInfo       `json:"groupInfo"`
	Attachments []wireAttachment `json:"attachments"`
}

type syncMessage struct {
	SentMessage *sentMessage `json:"sentMessage"`
}

// sentMessage is the sync copy of a message sent from another device of the
// same account. Destination identifies the peer the message went to.
type sentMessage struct {
	Timestamp       int64            `json:"timestamp"`
	Message         string           `json:"message"`
	Destination     string           `json:"destination"`
	DestinationUUID string           `json:"destinationUuid"`
	GroupInfo       *groupInfo       `json:"groupInfo"`
	Attachments     []wireAttachment `json:"attachments"`
}

type groupInfo struct {
	GroupID string `json:"groupId"`
}

type wireAttachment struct {
	ContentType string `json:"contentType"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
}

// decodeEnvelope turns one receive line into an InboundMessage. The second
// return is false for envelopes the engine has no use for: receipts, typing
// indicators, and messages carrying neither text nor attachments.
func decodeEnvelope(line []byte) (InboundMessage, bool, error) {
	var env wireEnvelope
	if err := json.Unmarshal(line, &env); err != nil {
		return InboundMessage{}, false, fmt.Errorf("decode envelope: %w", err)
	}

	body := env.Envelope
	source := body.Source
	if source == "" {
		source = body.SourceNumber
	}
	if source == "" {
		source = body.SourceUUID
	}

	msg := InboundMessage{
		Source:     source,
		SourceName: body.SourceName,
	}

	var (
		text        string
		group       *groupInfo
		attachments []wireAttachment
		stamp       int64
	)
	switch {
	case body.SyncMessage != nil && body.SyncMessage.SentMessage != nil:
		sent := body.SyncMessage.SentMessage
		text = sent.Message
		group = sent.GroupInfo
		attachments = sent.Attachments
		stamp = sent.Timestamp
		msg.Destination = sent.Destination
		if msg.Destination == "" {
			msg.Destination = sent.DestinationUUID
		}
	case body.DataMessage != nil:
		data := body.DataMessage
		text = data.Message
		group = data.GroupInfo
		attachments = data.Attachments
		stamp = data.Timestamp
	default:
		return InboundMessage{}, false, nil
	}

	if text == "" && len(attachments) == 0 {
		return InboundMessage{}, false, nil
	}

	msg.Text = text
	if group != nil {
		msg.GroupID = group.GroupID
	}
	for _, a := range attachments {
		msg.Attachments = append(msg.Attachments, types.Attachment{
			ContentType: a.ContentType,
			Filename:    a.Filename,
			Size:        a.Size,
		})
	}
	if stamp == 0 {
		stamp = body.Timestamp
	}
	msg.Timestamp = time.UnixMilli(stamp).UTC()
	return msg, true, nil
}
