package event

import (
	"strings"
	"sync"
)

var (
	registryMu sync.RWMutex
	nameToType = make(map[string]EventType)
	typeToName = make(map[EventType]string)
)

func init() {
	RegisterType("EventPausePressed", EventPausePressed)
	RegisterType("EventResumePressed", EventResumePressed)
	RegisterType("EventFrameAdvance", EventFrameAdvance)
	RegisterType("EventMatchEnd", EventMatchEnd)
}

// RegisterType maps a string name to an EventType
func RegisterType(name string, et EventType) {
	registryMu.Lock()
	defer registryMu.Unlock()
	nameToType[name] = et
	typeToName[et] = name
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	// Special case for FSM "Tick"
	if strings.EqualFold(name, "Tick") {
		return EventTick, true
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	if et == EventTick {
		return "Tick"
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	return typeToName[et]
}

func (et EventType) String() string {
	if name := GetEventName(et); name != "" {
		return name
	}
	return "EventUnknown"
}
