package netmon

import (
	"net"
	"slices"
	"time"
)

// InterfaceState is the observed state of one network interface.
type InterfaceState struct {
	Name         string   `json:"name"`
	Index        int      `json:"index"`
	MTU          int      `json:"mtu"`
	HardwareAddr string   `json:"hardware_addr,omitempty"`
	Up           bool     `json:"up"`
	Addrs        []string `json:"addrs,omitempty"`
}

// Snapshot is the interface table at a point in time.
type Snapshot struct {
	Taken      time.Time        `json:"taken"`
	Interfaces []InterfaceState `json:"interfaces"`
}

// TakeSnapshot captures the current interface table.
func TakeSnapshot() (*Snapshot, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	states := make([]InterfaceState, 0, len(ifaces))
	for _, iface := range ifaces {
		state := InterfaceState{
			Name:         iface.Name,
			Index:        iface.Index,
			MTU:          iface.MTU,
			HardwareAddr: iface.HardwareAddr.String(),
			Up:           iface.Flags&net.FlagUp != 0,
		}
		// Addrs can fail for interfaces that vanish mid-snapshot; an
		// empty address list is good enough in that case.
		if addrs, err := iface.Addrs(); err == nil {
			for _, addr := range addrs {
				state.Addrs = append(state.Addrs, addr.String())
			}
			slices.Sort(state.Addrs)
		}
		states = append(states, state)
	}

	return &Snapshot{Taken: time.Now(), Interfaces: states}, nil
}

// Diff compares s against a previous snapshot and returns one event per
// detected change, stamped with the given source.
func (s *Snapshot) Diff(prev *Snapshot, source string) []Event {
	if prev == nil {
		return nil
	}
	return diffStates(prev.Interfaces, s.Interfaces, s.Taken, source)
}

func diffStates(old, new []InterfaceState, now time.Time, source string) []Event {
	byName := make(map[string]InterfaceState, len(old))
	for _, state := range old {
		byName[state.Name] = state
	}

	var events []Event
	seen := make(map[string]bool, len(new))
	for _, state := range new {
		seen[state.Name] = true
		prev, existed := byName[state.Name]
		if !existed {
			events = append(events, Event{Kind: KindInterfaces, Interface: state.Name, Source: source, Time: now})
			continue
		}
		if prev.Up != state.Up || prev.MTU != state.MTU || prev.HardwareAddr != state.HardwareAddr {
			events = append(events, Event{Kind: KindInterfaces, Interface: state.Name, Source: source, Time: now})
		}
		if !slices.Equal(prev.Addrs, state.Addrs) {
			events = append(events, Event{Kind: KindAddress, Interface: state.Name, Source: source, Time: now})
		}
	}

	for _, state := range old {
		if !seen[state.Name] {
			events = append(events, Event{Kind: KindInterfaces, Interface: state.Name, Source: source, Time: now})
		}
	}

	return events
}
