package event

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// EventHandler reacts to a committed event. It returns nil when the event is none of its business.
type EventHandler func(e *EventRecord) *EventHandleResult

type EventHandleResult struct {
	Success           bool
	Message           string
	HandlerIdentifier string
}

// EventHandlers run in registration order. They are set up once at startup.
var EventHandlers []EventHandler

var InvokeHandlersFunc = invokeHandlers

// invokeHandlers runs every handler against record. The data is already committed, so a failing
// or panicking handler is logged and reported in the results without stopping the others.
func invokeHandlers(record *EventRecord) []EventHandleResult {
	results := []EventHandleResult{}
	for _, handler := range EventHandlers {
		r := runHandler(handler, record)
		if r == nil {
			continue
		}
		results = append(results, *r)

		entry := logrus.WithFields(logrus.Fields{
			"handler":  r.HandlerIdentifier,
			"source":   record.SourceType,
			"sourceId": record.SourceId,
			"desc":     record.SourceDesc,
			"category": record.EventCategory,
		})
		if r.Success {
			entry.Debug("event handled")
		} else {
			entry.Errorf("event handling failed: %s", r.Message)
		}
	}
	return results
}

func runHandler(handler EventHandler, record *EventRecord) (r *EventHandleResult) {
	defer func() {
		if ret := recover(); ret != nil {
			r = &EventHandleResult{Message: fmt.Sprintf("handler panic: %v", ret)}
		}
	}()
	return handler(record)
}
